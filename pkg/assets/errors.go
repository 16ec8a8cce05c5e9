package assets

import "errors"

var (
	// ErrPackageNotFound indicates that a package id is not in the catalog.
	ErrPackageNotFound = errors.New("assets: package not found in catalog")

	// ErrInvalidManifest indicates that a package manifest failed validation.
	ErrInvalidManifest = errors.New("assets: invalid package manifest")

	// ErrInvalidPackageID indicates a package id that is empty or contains
	// path elements.
	ErrInvalidPackageID = errors.New("assets: invalid package id")

	// ErrAssetNotFound indicates that a named asset is not part of a package.
	ErrAssetNotFound = errors.New("assets: asset not found in package")
)
