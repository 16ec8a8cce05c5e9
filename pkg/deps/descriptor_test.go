package deps

import (
	"testing"
)

func TestDependency_HashDeterministic(t *testing.T) {
	k := newStubKind("widget")

	d1 := New(k, "cfg-a")
	d2 := New(k, "cfg-a")

	if d1.Hash() != d2.Hash() {
		t.Errorf("descriptors with equal kind and config hash differently: %s vs %s", d1.Hash(), d2.Hash())
	}
	if d1.Hash() != d1.Hash() {
		t.Error("repeated Hash calls on the same descriptor differ")
	}
}

func TestDependency_HashDeterministic_SliceConfig(t *testing.T) {
	k := newStubKind("widget")

	d1 := New(k, []any{"map", 2, true})
	d2 := New(k, []any{"map", 2, true})

	if d1.Hash() != d2.Hash() {
		t.Error("descriptors with equal slice configs hash differently")
	}
}

func TestDependency_HashDistinctConfigs(t *testing.T) {
	k := newStubKind("widget")

	configs := []any{
		nil,
		true,
		false,
		"",
		"a",
		"b",
		0,
		1,
		uint64(3),
		1.5,
		[]any{"a"},
		[]any{"a", "b"},
	}

	seen := make(map[string]any)
	for _, cfg := range configs {
		h := New(k, cfg).Hash()
		if prev, exists := seen[h]; exists {
			t.Errorf("configs %v and %v collide on hash %s", prev, cfg, h)
		}
		seen[h] = cfg
	}
}

func TestDependency_HashDistinctKinds(t *testing.T) {
	k1 := newStubKind("widget")
	k2 := newStubKind("gadget")

	if New(k1, "x").Hash() == New(k2, "x").Hash() {
		t.Error("descriptors with distinct kinds and equal configs collide")
	}
}

func TestDependency_UnsupportedConfigPanics(t *testing.T) {
	k := newStubKind("widget")
	d := New(k, map[string]int{"a": 1})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unsupported config type")
		}
	}()
	d.Hash()
}
