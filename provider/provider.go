package provider

import "context"

// Provider is what a backend exposes to the registry: a configured name and
// a cheap readiness check that does not contact the remote side.
type Provider interface {
	Name() string
	IsAvailable(ctx context.Context) bool
}

// Closer is implemented by providers holding connections. Registry.Close
// calls it on every cached instance.
type Closer interface {
	Close(ctx context.Context) error
}

// Factory builds a provider from one client section of the config file,
// decoded to a plain map.
type Factory[T Provider] func(cfg map[string]any) (T, error)
