package deps

import (
	"testing"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	if registry == nil {
		t.Fatal("expected non-nil registry")
	}
	if registry.Count() != 0 {
		t.Errorf("expected empty registry, got count %d", registry.Count())
	}
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()
	k := newStubKind("widget")

	if err := registry.Register(k); err != nil {
		t.Fatalf("failed to register kind: %v", err)
	}
	if registry.Count() != 1 {
		t.Errorf("expected count 1, got %d", registry.Count())
	}

	// Registering the same name again must fail.
	if err := registry.Register(newStubKind("widget")); err == nil {
		t.Error("expected error when registering duplicate kind")
	}
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(nil); err == nil {
		t.Error("expected error for nil kind")
	}
	if err := registry.Register(&Kind{New: func() Component { return &stubComponent{} }}); err == nil {
		t.Error("expected error for kind with empty name")
	}
	if err := registry.Register(&Kind{Name: "broken"}); err == nil {
		t.Error("expected error for kind without factory")
	}
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry()
	k := newStubKind("widget")

	if err := registry.Register(k); err != nil {
		t.Fatalf("failed to register kind: %v", err)
	}

	if got := registry.Get("widget"); got != k {
		t.Errorf("Get(widget) = %v, expected the registered kind", got)
	}
	if got := registry.Get("nonexistent"); got != nil {
		t.Errorf("Get(nonexistent) = %v, expected nil", got)
	}
}

func TestRegistry_GetAll(t *testing.T) {
	registry := NewRegistry()

	for _, name := range []string{"a", "b", "c"} {
		if err := registry.Register(newStubKind(name)); err != nil {
			t.Fatalf("failed to register kind %s: %v", name, err)
		}
	}

	if got := len(registry.GetAll()); got != 3 {
		t.Errorf("GetAll() returned %d kinds, expected 3", got)
	}
}
