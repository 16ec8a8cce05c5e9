package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Manifest describes one bundled asset package: a named, versioned bundle of
// assets addressed by name.
type Manifest struct {
	ID      string            `yaml:"id" json:"id"`
	Version string            `yaml:"version" json:"version"`
	Assets  map[string]string `yaml:"assets,omitempty" json:"assets,omitempty"` // asset name -> path relative to the package root
}

// Validate checks the manifest for common errors.
func (m *Manifest) Validate() error {
	if err := ValidatePackageID(m.ID); err != nil {
		return err
	}
	for name, path := range m.Assets {
		if name == "" {
			return fmt.Errorf("%w: package %s has an asset with empty name", ErrInvalidManifest, m.ID)
		}
		if path == "" {
			return fmt.Errorf("%w: package %s asset %s has empty path", ErrInvalidManifest, m.ID, name)
		}
	}
	return nil
}

// ValidatePackageID rejects ids that are empty or would escape a catalog
// directory when used as a file name.
func ValidatePackageID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidPackageID)
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidPackageID, id)
	}
	return nil
}

// Catalog reports which asset packages are available on this host and serves
// their manifests.
type Catalog interface {
	// Has reports whether the package is available. It must be
	// side-effect-free: it is called during resolution, before any
	// component is constructed.
	Has(ctx context.Context, id string) bool

	// Manifest returns the manifest for an available package.
	// Returns ErrPackageNotFound for unknown ids.
	Manifest(ctx context.Context, id string) (*Manifest, error)
}

// Installer stores a package manifest into a catalog. Both catalog
// implementations double as installers so fetched packages become available
// for the next resolution pass.
type Installer interface {
	Install(ctx context.Context, m *Manifest) error
}

// DirCatalog serves package manifests from a directory of <id>.yaml files.
// This is the local-install catalog used by a single game host.
type DirCatalog struct {
	dir string
}

// NewDirCatalog creates a catalog over the given directory.
func NewDirCatalog(dir string) *DirCatalog {
	return &DirCatalog{dir: dir}
}

func (c *DirCatalog) path(id string) string {
	return filepath.Join(c.dir, id+".yaml")
}

// Has implements Catalog.
func (c *DirCatalog) Has(ctx context.Context, id string) bool {
	if err := ValidatePackageID(id); err != nil {
		return false
	}
	_, err := os.Stat(c.path(id))
	return err == nil
}

// Manifest implements Catalog.
func (c *DirCatalog) Manifest(ctx context.Context, id string) (*Manifest, error) {
	if err := ValidatePackageID(id); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, id)
		}
		return nil, fmt.Errorf("failed to read manifest for package %s: %w", id, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: package %s: %v", ErrInvalidManifest, id, err)
	}
	if m.ID != id {
		return nil, fmt.Errorf("%w: file %s.yaml declares id %q", ErrInvalidManifest, id, m.ID)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Install implements Installer by writing the manifest as <id>.yaml,
// creating the catalog directory if needed.
func (c *DirCatalog) Install(ctx context.Context, m *Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest for package %s: %w", m.ID, err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory %s: %w", c.dir, err)
	}
	if err := os.WriteFile(c.path(m.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest for package %s: %w", m.ID, err)
	}

	logrus.Infof("installed package %s (version %s) into %s", m.ID, m.Version, c.dir)
	return nil
}
