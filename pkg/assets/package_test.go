package assets

import (
	"context"
	"errors"
	"testing"

	"github.com/lunargate/preload/pkg/deps"
)

func TestPackageKind_ResolveAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writeManifestFile(t, dir, "core", `
id: core
version: "1.0"
assets:
  bg_music: audio/bg.ogg
`)

	kind := NewPackageKind(NewDirCatalog(dir))

	s := deps.NewSet(deps.New(kind, "core"))
	if err := s.Resolve(ctx); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rootC, err := s.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	pkg, ok := rootC.(*Package)
	if !ok {
		t.Fatalf("root component is %T, expected *Package", rootC)
	}

	if pkg.ID() != "core" {
		t.Errorf("ID() = %q, expected core", pkg.ID())
	}
	path, err := pkg.AssetPath("bg_music")
	if err != nil {
		t.Fatalf("AssetPath(bg_music) error = %v", err)
	}
	if path != "audio/bg.ogg" {
		t.Errorf("AssetPath(bg_music) = %q, expected audio/bg.ogg", path)
	}
	if _, err := pkg.AssetPath("ghost"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("AssetPath(ghost) error = %v, expected ErrAssetNotFound", err)
	}

	ids, err := s.AssetPackageIDs()
	if err != nil {
		t.Fatalf("AssetPackageIDs() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != "core" {
		t.Errorf("AssetPackageIDs() = %v, expected [core]", ids)
	}
}

func TestPackageKind_MissingPackage(t *testing.T) {
	ctx := context.Background()

	kind := NewPackageKind(NewDirCatalog(t.TempDir()))

	s := deps.NewSet(deps.New(kind, "nope"))
	err := s.Resolve(ctx)

	var missErr *deps.MissingDependencyError
	if !errors.As(err, &missErr) {
		t.Fatalf("Resolve() error = %v, expected MissingDependencyError", err)
	}
	if len(missErr.Missing) != 1 {
		t.Fatalf("expected one missing pair, got %v", missErr.Missing)
	}
	if m := missErr.Missing[0]; m.Kind != KindName || m.Config != "nope" {
		t.Errorf("missing pair = %v, expected %s(nope)", m, KindName)
	}
}

func TestPackageKind_NonStringConfig(t *testing.T) {
	ctx := context.Background()

	kind := NewPackageKind(NewDirCatalog(t.TempDir()))

	s := deps.NewSet(deps.New(kind, 42))
	err := s.Resolve(ctx)

	var missErr *deps.MissingDependencyError
	if !errors.As(err, &missErr) {
		t.Fatalf("Resolve() error = %v, expected MissingDependencyError", err)
	}
}
