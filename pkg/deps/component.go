package deps

import (
	"context"
	"fmt"
)

// Component is implemented by any type that can appear as a node in a
// dependency graph. Implementations embed BaseComponent, which satisfies the
// binding half of the contract; the framework binds the entry back-reference
// before Init runs, so Init may read its own config and resolve static
// dependencies through Dep.
type Component interface {
	// Init runs the component's own initialization logic. It is called at
	// most once per entry, after the entry back-reference is bound.
	Init(ctx context.Context) error

	// bindEntry installs the entry back-reference. It is unexported on
	// purpose: embedding BaseComponent is the only way to satisfy it, which
	// keeps the allocate-bind-init ordering enforced by Entry.
	bindEntry(e *Entry)
}

// BaseComponent carries the dependency-entry back-reference for a component
// instance. Embed it in every component implementation.
type BaseComponent struct {
	entry *Entry
}

func (b *BaseComponent) bindEntry(e *Entry) { b.entry = e }

// Entry returns the dependency entry this component was constructed for.
// Returns ErrNotBound when the component was not created through a set
// (for example instantiated directly in application code).
func (b *BaseComponent) Entry() (*Entry, error) {
	if b.entry == nil {
		return nil, ErrNotBound
	}
	return b.entry, nil
}

// Config returns the config value this component was resolved with.
func (b *BaseComponent) Config() (any, error) {
	if b.entry == nil {
		return nil, ErrNotBound
	}
	return b.entry.config, nil
}

// DepSet returns the set that owns this component's entry.
func (b *BaseComponent) DepSet() (*Set, error) {
	if b.entry == nil {
		return nil, ErrNotBound
	}
	return b.entry.set, nil
}

// Dep resolves a dependency descriptor to the live component instance held by
// the owning set, constructing it first if needed. This is how a component
// reaches the components behind its static dependencies during Init.
// Returns ErrNotBound when called on an unbound component, ErrNotResolved
// when the owning set has not been resolved, and ErrNotInSet when the
// descriptor was never part of the set's graph.
func (b *BaseComponent) Dep(ctx context.Context, d *Dependency) (Component, error) {
	if b.entry == nil {
		return nil, ErrNotBound
	}
	set := b.entry.set
	if !set.resolved {
		return nil, ErrNotResolved
	}
	e, ok := set.entries[d.Hash()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotInSet, d)
	}
	return e.Component(ctx)
}

// Kind describes a component type to the resolver. Kinds are the explicit,
// compile-time-enumerable counterpart of a component class: they carry the
// factory, the presence check, and the type's fixed and config-driven
// dependency declarations.
type Kind struct {
	// Name uniquely identifies the kind. It participates in structural
	// hashing, so renaming a kind changes every hash built from it.
	Name string

	// New allocates a bare, uninitialized component instance. The resolver
	// binds the entry back-reference and calls Init afterwards; New itself
	// must not touch config or dependencies.
	New func() Component

	// IsPresent reports whether this kind/config pair is usable on the
	// current host. It must be side-effect-free; it runs during resolution,
	// before any component is constructed. A nil IsPresent means the kind is
	// always present.
	IsPresent func(ctx context.Context, config any) bool

	// DynamicDeps returns additional dependencies computed from a config
	// value at resolution time. It must be side-effect-free. A nil
	// DynamicDeps means no config-driven dependencies.
	DynamicDeps func(config any) []*Dependency

	// StaticDeps are fixed dependencies included whenever this kind is
	// included, independent of its own config.
	StaticDeps []*Dependency

	// AssetPackage marks the bundled-asset-package kind, whose configs are
	// reported by Set.AssetPackageIDs.
	AssetPackage bool
}

func (k *Kind) isPresent(ctx context.Context, config any) bool {
	if k.IsPresent == nil {
		return true
	}
	return k.IsPresent(ctx, config)
}

func (k *Kind) dynamicDeps(config any) []*Dependency {
	if k.DynamicDeps == nil {
		return nil
	}
	return k.DynamicDeps(config)
}
