package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/demersaj/elements/internal/types"
)

// stubProvider implements the Provider interface for testing
type stubProvider struct {
	name    string
	healthy bool
}

func (s *stubProvider) Name() string {
	return s.name
}

func (s *stubProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubProvider) Health(ctx context.Context) types.HealthStatus {
	if s.healthy {
		return types.Healthy(fmt.Sprintf("%s is healthy", s.name))
	}
	return types.Unhealthy(fmt.Sprintf("%s is unhealthy", s.name))
}

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()
	if registry == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(registry.List()) != 0 {
		t.Errorf("new registry should be empty, got %d providers", len(registry.List()))
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Run("registers a provider", func(t *testing.T) {
		registry := NewRegistry()
		err := registry.Register(&stubProvider{name: "openai", healthy: true})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		got, err := registry.Get("openai")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name() != "openai" {
			t.Errorf("got provider %q, want %q", got.Name(), "openai")
		}
	})

	t.Run("rejects nil provider", func(t *testing.T) {
		registry := NewRegistry()
		err := registry.Register(nil)
		if !errors.Is(err, types.NewError(ErrProviderInvalidInput, "")) {
			t.Errorf("expected ErrProviderInvalidInput, got %v", err)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		registry := NewRegistry()
		err := registry.Register(&stubProvider{name: ""})
		if !errors.Is(err, types.NewError(ErrProviderInvalidInput, "")) {
			t.Errorf("expected ErrProviderInvalidInput, got %v", err)
		}
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		registry := NewRegistry()
		if err := registry.Register(&stubProvider{name: "anthropic"}); err != nil {
			t.Fatalf("first Register failed: %v", err)
		}
		err := registry.Register(&stubProvider{name: "anthropic"})
		if !errors.Is(err, types.NewError(ErrProviderAlreadyExists, "")) {
			t.Errorf("expected ErrProviderAlreadyExists, got %v", err)
		}
	})
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(&stubProvider{name: "openai"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := registry.Unregister("openai"); err != nil {
		t.Fatalf("Unregister failed: %v", err)
	}

	if _, err := registry.Get("openai"); !errors.Is(err, types.NewError(ErrProviderNotFound, "")) {
		t.Errorf("expected ErrProviderNotFound after unregister, got %v", err)
	}

	if err := registry.Unregister("openai"); !errors.Is(err, types.NewError(ErrProviderNotFound, "")) {
		t.Errorf("expected ErrProviderNotFound for double unregister, got %v", err)
	}
}

func TestRegistry_List(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"openai", "anthropic", "mock"} {
		if err := registry.Register(&stubProvider{name: name}); err != nil {
			t.Fatalf("Register(%q) failed: %v", name, err)
		}
	}

	names := registry.List()
	want := []string{"anthropic", "mock", "openai"}
	if len(names) != len(want) {
		t.Fatalf("List returned %d names, want %d", len(names), len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("List[%d] = %q, want %q (sorted)", i, names[i], name)
		}
	}
}

func TestRegistry_Health(t *testing.T) {
	ctx := context.Background()

	t.Run("empty registry is unhealthy", func(t *testing.T) {
		registry := NewRegistry()
		status := registry.Health(ctx)
		if status.State != types.HealthStateUnhealthy {
			t.Errorf("got %s, want unhealthy", status.State)
		}
	})

	t.Run("all healthy", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&stubProvider{name: "a", healthy: true})
		registry.Register(&stubProvider{name: "b", healthy: true})
		if status := registry.Health(ctx); status.State != types.HealthStateHealthy {
			t.Errorf("got %s, want healthy", status.State)
		}
	})

	t.Run("some unhealthy is degraded", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&stubProvider{name: "a", healthy: true})
		registry.Register(&stubProvider{name: "b", healthy: false})
		if status := registry.Health(ctx); status.State != types.HealthStateDegraded {
			t.Errorf("got %s, want degraded", status.State)
		}
	})

	t.Run("all unhealthy", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&stubProvider{name: "a", healthy: false})
		if status := registry.Health(ctx); status.State != types.HealthStateUnhealthy {
			t.Errorf("got %s, want unhealthy", status.State)
		}
	})
}
