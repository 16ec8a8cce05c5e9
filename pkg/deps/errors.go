package deps

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAlreadyResolved indicates Resolve was called on a resolved set.
	ErrAlreadyResolved = errors.New("deps: set already resolved")

	// ErrNotResolved indicates an operation that requires a resolved set.
	ErrNotResolved = errors.New("deps: set is not resolved")

	// ErrNotLoaded indicates Root was read before Load completed.
	ErrNotLoaded = errors.New("deps: set is not loaded")

	// ErrNotBound indicates a component accessor was used on an instance
	// that was not constructed through a dependency entry.
	ErrNotBound = errors.New("deps: component is not bound to a dependency entry")

	// ErrNotInSet indicates a dependency descriptor that is not part of the
	// owning set's resolved graph.
	ErrNotInSet = errors.New("deps: dependency is not part of the set")
)

// MissingDependency identifies one kind/config pair that failed its presence
// check.
type MissingDependency struct {
	Kind   string
	Config any
}

func (m MissingDependency) String() string {
	return fmt.Sprintf("%s(%v)", m.Kind, m.Config)
}

// MissingDependencyError reports every kind/config pair found unavailable
// during a resolution pass. Carrying the complete list lets a caller act on
// all of them at once, for example fetching every missing asset package
// before building a fresh set.
type MissingDependencyError struct {
	Missing []MissingDependency
}

func (e *MissingDependencyError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		parts[i] = m.String()
	}
	return "deps: missing dependencies: " + strings.Join(parts, ", ")
}

// DepthLimitError reports that graph expansion exceeded the recursion bound.
type DepthLimitError struct {
	Limit int
	Dep   string // descriptor at which the bound was hit
}

func (e *DepthLimitError) Error() string {
	return fmt.Sprintf("deps: dependency recursion limit (%d) exceeded at %s", e.Limit, e.Dep)
}
