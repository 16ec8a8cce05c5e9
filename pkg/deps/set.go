package deps

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/lunargate/preload/pkg/metrics"
)

// DefaultMaxDepth bounds dependency recursion during Resolve. It is a
// defensive limit against misdeclared dependency graphs, not a business rule.
const DefaultMaxDepth = 10

// Set expands a root dependency descriptor into a complete, deduplicated
// dependency graph and orchestrates component construction. Its lifecycle is
// strictly monotonic: unresolved -> resolved -> loaded, and each transition
// is gated by an explicit error when its precondition is not met.
//
// A Set is a private, single-caller object: Resolve and Load run to
// completion on the calling goroutine and the set performs no locking of its
// own. Two unrelated sets share no state and need no coordination.
type Set struct {
	root     *Dependency
	entries  map[string]*Entry
	order    []string // insertion order, kept for deterministic scans and diagnostics
	maxDepth int
	resolved bool
	loaded   bool
}

// Option configures a Set at construction time.
type Option func(*Set)

// WithMaxDepth overrides the recursion bound used during Resolve.
// Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(s *Set) {
		if n >= 1 {
			s.maxDepth = n
		}
	}
}

// NewSet creates a set for the given root descriptor.
func NewSet(root *Dependency, opts ...Option) *Set {
	if root == nil {
		panic("deps: nil root dependency")
	}
	s := &Set{
		root:     root,
		entries:  make(map[string]*Entry),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolved reports whether Resolve has completed successfully.
func (s *Set) Resolved() bool { return s.resolved }

// Loaded reports whether Load has completed.
func (s *Set) Loaded() bool { return s.loaded }

// Len returns the number of resolved entries.
func (s *Set) Len() int { return len(s.entries) }

// Resolve expands the graph from the root descriptor and validates that
// every entry's kind/config pair is present on this host. Returns
// ErrAlreadyResolved on a set that has already been resolved. Expansion
// failures (DepthLimitError) and presence failures (MissingDependencyError,
// carrying the complete missing list) leave the set unresolved with no
// partial state: entries built up during the failed pass are discarded.
func (s *Set) Resolve(ctx context.Context) error {
	if s.resolved {
		return ErrAlreadyResolved
	}

	if err := s.expand(ctx, s.root, 0); err != nil {
		s.discard()
		metrics.ResolvesTotal.WithLabelValues("error").Inc()
		return err
	}

	// Presence scan over every entry. All failures are gathered into one
	// error so the caller sees the complete picture, not the first miss.
	var missing []MissingDependency
	for _, h := range s.order {
		e := s.entries[h]
		if !e.kind.isPresent(ctx, e.config) {
			logrus.Debugf("dependency not present: %s(%v)", e.kind.Name, e.config)
			missing = append(missing, MissingDependency{Kind: e.kind.Name, Config: e.config})
		}
	}
	if len(missing) > 0 {
		s.discard()
		metrics.ResolvesTotal.WithLabelValues("missing").Inc()
		metrics.MissingDependenciesTotal.Add(float64(len(missing)))
		return &MissingDependencyError{Missing: missing}
	}

	s.resolved = true
	metrics.ResolvesTotal.WithLabelValues("ok").Inc()
	logrus.Debugf("resolved dependency set: %d entries", len(s.entries))
	return nil
}

// expand recursively walks a descriptor's dependencies. The entry is inserted
// before recursing, so a descriptor that leads back to an ancestor (directly
// or through a cycle) is seen as already handled and the walk terminates.
func (s *Set) expand(ctx context.Context, d *Dependency, depth int) error {
	if depth >= s.maxDepth {
		return &DepthLimitError{Limit: s.maxDepth, Dep: d.String()}
	}

	h := d.Hash()
	if _, exists := s.entries[h]; exists {
		return nil
	}
	s.entries[h] = newEntry(d, s)
	s.order = append(s.order, h)
	logrus.Debugf("dependency entry added: %s (depth %d)", d, depth)

	for _, sub := range d.kind.StaticDeps {
		if err := s.expand(ctx, sub, depth+1); err != nil {
			return err
		}
	}
	for _, sub := range d.kind.dynamicDeps(d.config) {
		if err := s.expand(ctx, sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// discard drops entries built up during a failed resolution pass so no
// partial state is observable afterwards.
func (s *Set) discard() {
	s.entries = make(map[string]*Entry)
	s.order = nil
}

// Load constructs every entry's component. Entries memoize their instance,
// so repeated calls are idempotent and instantiation order is effectively
// dependency-first for components that resolve their static dependencies
// during Init. Returns ErrNotResolved on an unresolved set; construction
// failures propagate and leave the set not loaded.
func (s *Set) Load(ctx context.Context) error {
	if !s.resolved {
		return ErrNotResolved
	}
	for _, h := range s.order {
		if _, err := s.entries[h].Component(ctx); err != nil {
			return err
		}
	}
	s.loaded = true
	logrus.Debugf("loaded dependency set: %d components", len(s.entries))
	return nil
}

// Root returns the fully constructed component for the root descriptor.
// Returns ErrNotLoaded before Load has completed.
func (s *Set) Root() (Component, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return s.entries[s.root.Hash()].component, nil
}

// AssetPackageIDs returns the distinct config values of every resolved entry
// whose kind is marked as a bundled asset package, sorted for determinism.
// Returns ErrNotResolved on an unresolved set.
func (s *Set) AssetPackageIDs() ([]string, error) {
	if !s.resolved {
		return nil, ErrNotResolved
	}
	seen := make(map[string]bool)
	var ids []string
	for _, h := range s.order {
		e := s.entries[h]
		if !e.kind.AssetPackage {
			continue
		}
		id, ok := e.config.(string)
		if !ok {
			id = fmt.Sprintf("%v", e.config)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
