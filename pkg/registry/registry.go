package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/host"
)

// ErrNotFound is returned when no builder is registered under a step type.
var ErrNotFound = errors.New("step type not registered")

// StepFunc builds one step from its raw definition. Parameters are bound against env.
type StepFunc func(raw map[string]any, env *host.Env) (domain.Activity, error)

// Registry manages the available step types.
type Registry struct {
	mu    sync.RWMutex
	steps map[string]StepFunc
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		steps: make(map[string]StepFunc),
	}
}

// Register adds a step type to the registry.
// If a step type with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn StepFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[name] = fn
}

// Lookup returns the builder registered under name.
func (r *Registry) Lookup(name string) (StepFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.steps[name]
	return fn, ok
}

// Build looks up a step type by name and builds it.
func (r *Registry) Build(name string, raw map[string]any, env *host.Env) (domain.Activity, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return fn(raw, env)
}

// Names returns the registered step types in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.steps))
	for name := range r.steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
