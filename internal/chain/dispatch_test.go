package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demersaj/elements/internal/llm"
	"github.com/demersaj/elements/internal/llm/providers"
)

func TestDispatch_LocalIsDeferred(t *testing.T) {
	d := NewDispatcher(nil)

	result := d.Dispatch(context.Background(), "prompt", StepConfig{Backend: BackendLocal})
	assert.Equal(t, StatusDeferred, result.Status)
	assert.Empty(t, result.Text)
}

func TestDispatch_UsesRegisteredProvider(t *testing.T) {
	registry := llm.NewRegistry()
	mock := providers.NewMockProvider([]string{"response text"}).WithName("openai")
	require.NoError(t, registry.Register(mock))

	d := NewDispatcher(registry)
	result := d.Dispatch(context.Background(), "the prompt", StepConfig{
		Backend:     BackendOpenAI,
		Temperature: 0.4,
	})

	assert.Equal(t, StatusOK, result.Status)
	assert.Equal(t, "response text", result.Text)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "the prompt", calls[0].Request.Messages[0].Content)
	assert.InDelta(t, 0.4, calls[0].Request.Temperature, 1e-9)
	assert.Equal(t, dispatchMaxTokens, calls[0].Request.MaxTokens)
}

func TestDispatch_ProviderFailureIsNotFatal(t *testing.T) {
	registry := llm.NewRegistry()
	mock := providers.NewMockProvider(nil).WithName("anthropic").FailWith(errors.New("auth failure"))
	require.NoError(t, registry.Register(mock))

	d := NewDispatcher(registry)
	result := d.Dispatch(context.Background(), "prompt", StepConfig{Backend: BackendAnthropic})

	assert.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.Diagnostic, "auth failure")
}

func TestDispatch_MissingClientIsFailed(t *testing.T) {
	// No registered provider and no credential: provider construction fails
	// and the dispatcher reports it as a failed result, never an error.
	t.Setenv("OPENAI_API_KEY", "")

	d := NewDispatcher(llm.NewRegistry())
	result := d.Dispatch(context.Background(), "prompt", StepConfig{Backend: BackendOpenAI})

	assert.Equal(t, StatusFailed, result.Status)
	assert.NotEmpty(t, result.Diagnostic)
}

func TestDispatch_EmptyOutputIsOK(t *testing.T) {
	registry := llm.NewRegistry()
	mock := providers.NewMockProvider([]string{""}).WithName("openai")
	require.NoError(t, registry.Register(mock))

	d := NewDispatcher(registry)
	result := d.Dispatch(context.Background(), "prompt", StepConfig{Backend: BackendOpenAI})

	// Empty text from a successful call stays distinguishable from failure;
	// the executor decides how to present it.
	assert.Equal(t, StatusOK, result.Status)
	assert.Empty(t, result.Text)
}

func TestDispatch_SingleAttempt(t *testing.T) {
	registry := llm.NewRegistry()
	mock := providers.NewMockProvider(nil).WithName("openai").FailWith(errors.New("transient"))
	require.NoError(t, registry.Register(mock))

	d := NewDispatcher(registry)
	d.Dispatch(context.Background(), "prompt", StepConfig{Backend: BackendOpenAI})

	assert.Equal(t, 1, mock.CallCount(), "dispatch must never retry")
}
