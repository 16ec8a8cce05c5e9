package assets

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lunargate/preload/pkg/deps"
)

// KindName is the registered name of the bundled-asset-package kind.
const KindName = "asset-package"

// Package is the bundled-asset-package component. Its config is the package
// id; once initialized it holds the package manifest and answers asset-path
// lookups for gameplay code.
type Package struct {
	deps.BaseComponent

	catalog  Catalog
	manifest *Manifest
}

// Init loads the package manifest from the catalog. The entry back-reference
// is already bound when Init runs, so the config is readable here.
func (p *Package) Init(ctx context.Context) error {
	cfg, err := p.Config()
	if err != nil {
		return err
	}
	id, ok := cfg.(string)
	if !ok {
		return fmt.Errorf("%w: config %v (%T) is not a package id", ErrInvalidPackageID, cfg, cfg)
	}

	m, err := p.catalog.Manifest(ctx, id)
	if err != nil {
		return err
	}
	p.manifest = m
	logrus.Debugf("asset package %s initialized (version %s, %d assets)", m.ID, m.Version, len(m.Assets))
	return nil
}

// ID returns the package id.
func (p *Package) ID() string { return p.manifest.ID }

// Manifest returns the loaded package manifest.
func (p *Package) Manifest() *Manifest { return p.manifest }

// AssetPath returns the package-relative path of a named asset.
func (p *Package) AssetPath(name string) (string, error) {
	path, ok := p.manifest.Assets[name]
	if !ok {
		return "", fmt.Errorf("%w: %s in package %s", ErrAssetNotFound, name, p.manifest.ID)
	}
	return path, nil
}

// NewPackageKind returns the component kind for bundled asset packages
// backed by the given catalog. Presence of a package is the catalog's call;
// the resolver aggregates every missing package into one error so callers
// can fetch them in a single pass.
func NewPackageKind(catalog Catalog) *deps.Kind {
	return &deps.Kind{
		Name:         KindName,
		AssetPackage: true,
		New: func() deps.Component {
			return &Package{catalog: catalog}
		},
		IsPresent: func(ctx context.Context, config any) bool {
			id, ok := config.(string)
			if !ok {
				return false
			}
			return catalog.Has(ctx, id)
		},
	}
}
