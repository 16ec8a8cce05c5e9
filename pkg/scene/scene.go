// Package scene declares the scene component kind: the resolver-facing
// description of a loadable scene and the asset packages it requires.
package scene

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/lunargate/preload/pkg/assets"
	"github.com/lunargate/preload/pkg/deps"
)

// KindName is the registered name of the scene kind.
const KindName = "scene"

// Scene is a loadable scene component. Its config is the scene name; after
// Init it holds live Package components for every asset package the scene
// requires (core packages included).
type Scene struct {
	deps.BaseComponent

	cfg     *Config
	pkgKind *deps.Kind

	name     string
	packages map[string]*assets.Package
}

// Init resolves the scene's definition and its package dependencies to live
// component instances. Package entries are part of the same set (they were
// declared as static or dynamic dependencies of this scene), so Dep resolves
// each descriptor to the one deduplicated instance.
func (s *Scene) Init(ctx context.Context) error {
	raw, err := s.Config()
	if err != nil {
		return err
	}
	name, ok := raw.(string)
	if !ok {
		return fmt.Errorf("scene config %v (%T) is not a scene name", raw, raw)
	}

	def, ok := s.cfg.Definition(name)
	if !ok {
		return fmt.Errorf("scene %s is not defined", name)
	}

	s.name = name
	s.packages = make(map[string]*assets.Package)

	ids := append(append([]string{}, s.cfg.CorePackages...), def.Packages...)
	for _, id := range ids {
		c, err := s.Dep(ctx, deps.New(s.pkgKind, id))
		if err != nil {
			return err
		}
		pkg, ok := c.(*assets.Package)
		if !ok {
			return fmt.Errorf("dependency %s resolved to %T, expected *assets.Package", id, c)
		}
		s.packages[id] = pkg
	}

	logrus.Debugf("scene %s initialized with %d packages", name, len(s.packages))
	return nil
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// Package returns the live asset-package component for an id the scene
// depends on.
func (s *Scene) Package(id string) (*assets.Package, bool) {
	p, ok := s.packages[id]
	return p, ok
}

// PackageIDs returns the ids of the scene's own packages, sorted.
func (s *Scene) PackageIDs() []string {
	ids := make([]string, 0, len(s.packages))
	for id := range s.packages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewKind returns the scene component kind for the given definitions.
// Core packages become static dependencies: they ride along with every scene
// regardless of config. A scene's own packages and sub-scenes are dynamic
// dependencies computed from its definition; sub-scene references may form
// cycles, which the resolver's hash dedup terminates.
func NewKind(cfg *Config, pkgKind *deps.Kind) *deps.Kind {
	static := make([]*deps.Dependency, 0, len(cfg.CorePackages))
	for _, id := range cfg.CorePackages {
		static = append(static, deps.New(pkgKind, id))
	}

	k := &deps.Kind{
		Name:       KindName,
		StaticDeps: static,
		New: func() deps.Component {
			return &Scene{cfg: cfg, pkgKind: pkgKind}
		},
		IsPresent: func(ctx context.Context, config any) bool {
			name, ok := config.(string)
			if !ok {
				return false
			}
			_, defined := cfg.Definition(name)
			return defined
		},
	}

	// DynamicDeps refers to k itself for sub-scenes, so it is attached after
	// construction.
	k.DynamicDeps = func(config any) []*deps.Dependency {
		name, ok := config.(string)
		if !ok {
			return nil
		}
		def, ok := cfg.Definition(name)
		if !ok {
			return nil
		}

		var out []*deps.Dependency
		for _, id := range def.Packages {
			out = append(out, deps.New(pkgKind, id))
		}
		for _, sub := range def.Scenes {
			out = append(out, deps.New(k, sub))
		}
		return out
	}

	return k
}
