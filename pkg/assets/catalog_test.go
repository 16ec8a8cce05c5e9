package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifestFile(t *testing.T, dir, id, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, id+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest fixture: %v", err)
	}
}

func TestDirCatalog_HasAndManifest(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writeManifestFile(t, dir, "pkg1", `
id: pkg1
version: "1.2"
assets:
  bg_music: audio/bg.ogg
  splash: textures/splash.dds
`)

	c := NewDirCatalog(dir)

	if !c.Has(ctx, "pkg1") {
		t.Error("Has(pkg1) = false, expected true")
	}
	if c.Has(ctx, "nope") {
		t.Error("Has(nope) = true, expected false")
	}

	m, err := c.Manifest(ctx, "pkg1")
	if err != nil {
		t.Fatalf("Manifest(pkg1) error = %v", err)
	}
	if m.ID != "pkg1" {
		t.Errorf("manifest ID = %q, expected pkg1", m.ID)
	}
	if m.Version != "1.2" {
		t.Errorf("manifest Version = %q, expected 1.2", m.Version)
	}
	if m.Assets["bg_music"] != "audio/bg.ogg" {
		t.Errorf("bg_music path = %q, expected audio/bg.ogg", m.Assets["bg_music"])
	}

	if _, err := c.Manifest(ctx, "nope"); !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("Manifest(nope) error = %v, expected ErrPackageNotFound", err)
	}
}

func TestDirCatalog_InvalidID(t *testing.T) {
	ctx := context.Background()
	c := NewDirCatalog(t.TempDir())

	for _, id := range []string{"", "../evil", "a/b", `a\b`} {
		if c.Has(ctx, id) {
			t.Errorf("Has(%q) = true, expected false", id)
		}
		if _, err := c.Manifest(ctx, id); !errors.Is(err, ErrInvalidPackageID) {
			t.Errorf("Manifest(%q) error = %v, expected ErrInvalidPackageID", id, err)
		}
	}
}

func TestDirCatalog_IDMismatch(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writeManifestFile(t, dir, "pkg2", `
id: other
version: "1.0"
`)

	c := NewDirCatalog(dir)
	if _, err := c.Manifest(ctx, "pkg2"); !errors.Is(err, ErrInvalidManifest) {
		t.Errorf("Manifest(pkg2) error = %v, expected ErrInvalidManifest", err)
	}
}

func TestDirCatalog_MalformedYAML(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writeManifestFile(t, dir, "broken", "id: [unclosed")

	c := NewDirCatalog(dir)
	if _, err := c.Manifest(ctx, "broken"); !errors.Is(err, ErrInvalidManifest) {
		t.Errorf("Manifest(broken) error = %v, expected ErrInvalidManifest", err)
	}
}

func TestDirCatalog_Install(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "catalog") // not created yet

	c := NewDirCatalog(dir)
	m := &Manifest{
		ID:      "pkg3",
		Version: "2.0",
		Assets:  map[string]string{"mesh": "models/crate.obj"},
	}

	if err := c.Install(ctx, m); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if !c.Has(ctx, "pkg3") {
		t.Error("Has(pkg3) = false after install")
	}

	got, err := c.Manifest(ctx, "pkg3")
	if err != nil {
		t.Fatalf("Manifest(pkg3) error = %v", err)
	}
	if got.Version != "2.0" || got.Assets["mesh"] != "models/crate.obj" {
		t.Errorf("round-tripped manifest = %+v", got)
	}
}

func TestManifest_Validate(t *testing.T) {
	cases := []struct {
		name    string
		m       Manifest
		wantErr bool
	}{
		{"valid", Manifest{ID: "ok", Version: "1.0"}, false},
		{"empty id", Manifest{Version: "1.0"}, true},
		{"path in id", Manifest{ID: "a/b"}, true},
		{"empty asset name", Manifest{ID: "ok", Assets: map[string]string{"": "x"}}, true},
		{"empty asset path", Manifest{ID: "ok", Assets: map[string]string{"x": ""}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.m.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
