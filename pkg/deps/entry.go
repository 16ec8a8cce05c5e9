package deps

import (
	"context"
	"fmt"

	"github.com/lunargate/preload/pkg/metrics"
)

// Entry is a resolved dependency-graph node. Exactly one entry exists per
// structural hash within a set, and each entry constructs its component at
// most once. The back-reference to the owning set is non-owning in spirit:
// it is never traversed for lifetime purposes.
type Entry struct {
	kind      *Kind
	config    any
	component Component
	set       *Set
}

func newEntry(d *Dependency, s *Set) *Entry {
	return &Entry{kind: d.kind, config: d.config, set: s}
}

// Kind returns the entry's component kind.
func (e *Entry) Kind() *Kind { return e.kind }

// Config returns the config value the entry was resolved with.
func (e *Entry) Config() any { return e.config }

// DepSet returns the set that owns this entry.
func (e *Entry) DepSet() *Set { return e.set }

// Component returns the entry's component instance, constructing it on first
// use. Construction allocates a bare instance, binds the entry back-reference,
// and only then runs Init, so the instance can read its config and resolve
// static dependencies during its own initialization. On Init failure the
// component slot stays unset and the error propagates to the caller.
func (e *Entry) Component(ctx context.Context) (Component, error) {
	if e.component != nil {
		return e.component, nil
	}
	c := e.kind.New()
	if c == nil {
		return nil, fmt.Errorf("deps: kind %s factory returned nil", e.kind.Name)
	}
	c.bindEntry(e)
	if err := c.Init(ctx); err != nil {
		return nil, fmt.Errorf("deps: init %s(%v) component: %w", e.kind.Name, e.config, err)
	}
	e.component = c
	metrics.ComponentsLoadedTotal.Inc()
	return c, nil
}
