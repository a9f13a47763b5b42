package llm

import (
	"context"

	"github.com/demersaj/elements/internal/types"
)

// Provider defines the interface that all LLM providers must implement.
// It provides a unified abstraction for the hosted text-generation services
// an element can dispatch prompts to (OpenAI GPT, Anthropic Claude, mocks).
type Provider interface {
	// Name returns the provider name (e.g., "anthropic", "openai")
	Name() string

	// Complete sends a completion request and returns the full response.
	// This is a blocking call that waits for the entire response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Health checks the health status of the provider and its connectivity
	Health(ctx context.Context) types.HealthStatus
}

// ProviderType represents the type of LLM provider.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderMock      ProviderType = "mock"
)

// ProviderConfig contains configuration for a specific LLM provider.
type ProviderConfig struct {
	Type    ProviderType `mapstructure:"type" yaml:"type"`
	APIKey  string       `mapstructure:"api_key" yaml:"api_key"`
	BaseURL string       `mapstructure:"base_url" yaml:"base_url"`
	Model   string       `mapstructure:"model" yaml:"model"`
}
