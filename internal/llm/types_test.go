package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleSystem.IsValid())
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAssistant.IsValid())
	assert.False(t, Role("robot").IsValid())
}

func TestRole_UnmarshalJSON_Invalid(t *testing.T) {
	var r Role
	err := json.Unmarshal([]byte(`"robot"`), &r)
	assert.Error(t, err)
}

func TestMessage_Validate(t *testing.T) {
	require.NoError(t, NewUserMessage("hello").Validate())
	require.NoError(t, NewSystemMessage("be brief").Validate())

	assert.Error(t, Message{Role: RoleUser}.Validate())
	assert.Error(t, Message{Role: "robot", Content: "x"}.Validate())
}

func TestCompletionRequest_Validate(t *testing.T) {
	valid := CompletionRequest{
		Messages:    []Message{NewUserMessage("hello")},
		Temperature: 0.7,
		MaxTokens:   1000,
	}
	require.NoError(t, valid.Validate())

	t.Run("no messages", func(t *testing.T) {
		req := valid
		req.Messages = nil
		assert.Error(t, req.Validate())
	})

	t.Run("temperature out of range", func(t *testing.T) {
		req := valid
		req.Temperature = 1.5
		assert.Error(t, req.Validate())
	})

	t.Run("negative max tokens", func(t *testing.T) {
		req := valid
		req.MaxTokens = -1
		assert.Error(t, req.Validate())
	})

	t.Run("invalid message", func(t *testing.T) {
		req := valid
		req.Messages = []Message{{Role: RoleUser}}
		assert.Error(t, req.Validate())
	})
}
