package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewError(CHAIN_INPUT_INVALID, "no input text provided")
		assert.Equal(t, "[CHAIN_INPUT_INVALID] no input text provided", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := WrapError(DOCSTORE_OPEN_FAILED, "failed to open index", cause)
		assert.Equal(t, "[DOCSTORE_OPEN_FAILED] failed to open index: connection refused", err.Error())
	})
}

func TestElementError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(DOCSTORE_WRITE_FAILED, "write failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestElementError_Is(t *testing.T) {
	err := NewError(CHAIN_INPUT_INVALID, "empty input")
	wrapped := fmt.Errorf("executing chain: %w", err)

	assert.True(t, errors.Is(wrapped, NewError(CHAIN_INPUT_INVALID, "different message")))
	assert.False(t, errors.Is(wrapped, NewError(CHAIN_STEP_FAILED, "empty input")))
}

func TestNewRetryableError(t *testing.T) {
	err := NewRetryableError(DOCSTORE_INDEX_FAILED, "index busy")
	assert.True(t, err.Retryable)

	err = NewError(RULES_PARSE_FAILED, "bad operator")
	assert.False(t, err.Retryable)
}

func TestCodeOf(t *testing.T) {
	err := NewError(RULES_EVAL_FAILED, "field missing")
	assert.Equal(t, RULES_EVAL_FAILED, CodeOf(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}
