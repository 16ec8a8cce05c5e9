package deps

import (
	"fmt"
	"sync"
)

// Registry manages available component kinds by name. It provides
// thread-safe registration and lookup so configuration-driven tooling can
// map kind names from definition files to kinds.
type Registry struct {
	kinds map[string]*Kind
	mu    sync.RWMutex
}

// NewRegistry creates a new empty kind registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]*Kind),
	}
}

// Register adds a kind to the registry.
// Returns an error for invalid kinds or duplicate names.
func (r *Registry) Register(k *Kind) error {
	if k == nil {
		return fmt.Errorf("deps: nil kind")
	}
	if k.Name == "" {
		return fmt.Errorf("deps: kind with empty name")
	}
	if k.New == nil {
		return fmt.Errorf("deps: kind %s has no factory", k.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kinds[k.Name]; exists {
		return fmt.Errorf("deps: kind %s already registered", k.Name)
	}

	r.kinds[k.Name] = k
	return nil
}

// Get returns a kind by name.
// Returns nil if the kind doesn't exist.
func (r *Registry) Get(name string) *Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.kinds[name]
}

// GetAll returns all registered kinds.
func (r *Registry) GetAll() []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]*Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		kinds = append(kinds, k)
	}

	return kinds
}

// Count returns the number of registered kinds.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.kinds)
}
