package llm

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/demersaj/elements/internal/types"
)

// Registry manages LLM provider registration, discovery, and health
// monitoring. It provides a centralized registry for all providers with
// thread-safe operations and built-in health aggregation.
type Registry interface {
	// Register registers an LLM provider with the registry
	Register(provider Provider) error

	// Unregister removes a provider from the registry by name
	Unregister(name string) error

	// Get retrieves a provider by name
	Get(name string) (Provider, error)

	// List returns the names of all registered providers
	List() []string

	// Health returns the overall health status of the registry.
	// Health states:
	// - Healthy: all providers are healthy
	// - Degraded: some providers are unhealthy
	// - Unhealthy: all providers are unhealthy or no providers registered
	Health(ctx context.Context) types.HealthStatus
}

// DefaultRegistry implements Registry with thread-safe operations.
type DefaultRegistry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates a new DefaultRegistry instance
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		providers: make(map[string]Provider),
	}
}

// Register registers an LLM provider with the registry.
// Returns ErrProviderAlreadyExists if a provider with the same name is
// already registered, ErrProviderInvalidInput if the provider is nil or has
// an empty name.
func (r *DefaultRegistry) Register(provider Provider) error {
	if provider == nil {
		return types.NewError(ErrProviderInvalidInput, "provider cannot be nil")
	}

	name := provider.Name()
	if name == "" {
		return types.NewError(ErrProviderInvalidInput, "provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return types.NewError(ErrProviderAlreadyExists, fmt.Sprintf("provider %q already registered", name))
	}

	r.providers[name] = provider

	return nil
}

// Unregister removes a provider from the registry by name.
// Returns ErrProviderNotFound if the provider doesn't exist.
func (r *DefaultRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; !exists {
		return types.NewError(ErrProviderNotFound, fmt.Sprintf("provider %q not found", name))
	}

	delete(r.providers, name)

	return nil
}

// Get retrieves a provider by name.
// Returns ErrProviderNotFound if the provider doesn't exist.
func (r *DefaultRegistry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	if !exists {
		return nil, types.NewError(ErrProviderNotFound, fmt.Sprintf("provider %q not found", name))
	}

	return provider, nil
}

// List returns the names of all registered providers.
// The returned slice is sorted alphabetically for consistent ordering.
func (r *DefaultRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Health returns the overall health status of the registry.
func (r *DefaultRegistry) Health(ctx context.Context) types.HealthStatus {
	r.mu.RLock()
	providers := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		providers = append(providers, p)
	}
	r.mu.RUnlock()

	if len(providers) == 0 {
		return types.Unhealthy("no providers registered")
	}

	healthy := 0
	for _, p := range providers {
		if p.Health(ctx).IsHealthy() {
			healthy++
		}
	}

	switch {
	case healthy == len(providers):
		return types.Healthy(fmt.Sprintf("%d providers healthy", healthy))
	case healthy > 0:
		return types.Degraded(fmt.Sprintf("%d of %d providers healthy", healthy, len(providers)))
	default:
		return types.Unhealthy("all providers unhealthy")
	}
}
