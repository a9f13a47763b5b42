package chain

import (
	"context"

	"github.com/demersaj/elements/internal/llm"
	"github.com/demersaj/elements/internal/llm/providers"
)

// dispatchMaxTokens is the fixed per-step token budget for hosted providers.
const dispatchMaxTokens = 1000

// Status classifies the outcome of one backend dispatch.
type Status string

const (
	// StatusOK means the provider returned text (possibly empty).
	StatusOK Status = "ok"

	// StatusDeferred means the step targets the local backend, which the
	// engine cannot invoke itself; the caller must substitute a pending
	// marker. This is an acknowledged architectural gap, not a failure.
	StatusDeferred Status = "deferred"

	// StatusFailed means the provider call failed; the diagnostic explains
	// why. The caller treats this as empty output, never as a fatal error.
	StatusFailed Status = "failed"
)

// Result is the normalized outcome of one dispatch attempt.
type Result struct {
	Status     Status
	Text       string
	Diagnostic string
}

// Dispatcher routes a formatted prompt to a step's backend and normalizes the
// outcome. It never retries and never returns an error: hosted-provider
// failures of any kind (missing client, auth, network, parse) are converted
// to a failed Result.
type Dispatcher struct {
	registry llm.Registry
}

// NewDispatcher creates a dispatcher backed by the given provider registry.
// Providers found in the registry are used as-is; otherwise a provider is
// built from the step's credential for the single call, mirroring the
// one-client-per-call behavior of per-step API keys.
func NewDispatcher(registry llm.Registry) *Dispatcher {
	if registry == nil {
		registry = llm.NewRegistry()
	}
	return &Dispatcher{registry: registry}
}

// Dispatch issues at most one completion call for the step.
func (d *Dispatcher) Dispatch(ctx context.Context, prompt string, cfg StepConfig) Result {
	if cfg.Backend == BackendLocal {
		return Result{Status: StatusDeferred}
	}

	provider, err := d.provider(cfg)
	if err != nil {
		return Result{Status: StatusFailed, Diagnostic: err.Error()}
	}

	req := llm.CompletionRequest{
		Messages:    []llm.Message{llm.NewUserMessage(prompt)},
		Temperature: cfg.Temperature,
		MaxTokens:   dispatchMaxTokens,
	}

	resp, err := provider.Complete(ctx, req)
	if err != nil {
		return Result{Status: StatusFailed, Diagnostic: err.Error()}
	}

	return Result{Status: StatusOK, Text: resp.Message.Content}
}

// provider resolves the backend to an llm.Provider, preferring a registered
// instance over constructing one from the step credential.
func (d *Dispatcher) provider(cfg StepConfig) (llm.Provider, error) {
	if p, err := d.registry.Get(string(cfg.Backend)); err == nil {
		return p, nil
	}

	return providers.NewProvider(llm.ProviderConfig{
		Type:   llm.ProviderType(cfg.Backend),
		APIKey: cfg.APIKey,
	})
}
