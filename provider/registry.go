package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry maps backend kinds to factories and keeps the instances built
// from them under their own names.
type Registry[T Provider] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
	instances map[string]T
}

// NewRegistry creates a new empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{
		factories: make(map[string]Factory[T]),
		instances: make(map[string]T),
	}
}

// RegisterFactory registers the factory for a backend kind.
func (r *Registry[T]) RegisterFactory(kind string, factory Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// Create instantiates a provider using the factory for kind.
func (r *Registry[T]) Create(kind string, cfg map[string]any) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("provider factory %q not registered (available: %v)", kind, r.Kinds())
	}
	return factory(cfg)
}

// Build creates a provider of the given kind and caches it under name.
// An instance already cached under name is returned as is.
func (r *Registry[T]) Build(name, kind string, cfg map[string]any) (T, error) {
	if inst, ok := r.Get(name); ok {
		return inst, nil
	}
	inst, err := r.Create(kind, cfg)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("provider %q: %w", name, err)
	}
	r.Set(name, inst)
	return inst, nil
}

// Get returns a cached provider instance by name.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instances[name]
	return inst, ok
}

// Set caches a provider instance by name.
func (r *Registry[T]) Set(name string, instance T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[name] = instance
}

// Kinds returns sorted names of all registered factories.
func (r *Registry[T]) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.factories)
}

// Instances returns sorted names of all cached instances.
func (r *Registry[T]) Instances() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.instances)
}

// Close closes every cached instance that implements Closer and forgets
// all instances. Every instance is closed even if an earlier one fails.
func (r *Registry[T]) Close(ctx context.Context) error {
	r.mu.Lock()
	instances := r.instances
	r.instances = make(map[string]T)
	r.mu.Unlock()

	var errs []error
	for _, name := range sortedKeys(instances) {
		c, ok := any(instances[name]).(Closer)
		if !ok {
			continue
		}
		if err := c.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close provider %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
