package gemini

import (
	"testing"

	"portfolio-chatbot-be/pkg/llm"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTurns(t *testing.T) {
	past, last, err := splitTurns([]llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "hello"},
		{Role: llm.RoleUser, Content: "projects?"},
	})
	require.NoError(t, err)

	assert.Equal(t, "projects?", last)
	require.Len(t, past, 2)
	assert.Equal(t, "user", past[0].Role)
	assert.Equal(t, roleModel, past[1].Role)
	assert.Equal(t, genai.Text("hello"), past[1].Parts[0])
}

func TestSplitTurnsRejectsTrailingAssistant(t *testing.T) {
	tests := []struct {
		name  string
		turns []llm.Message
	}{
		{name: "empty", turns: nil},
		{name: "ends with assistant", turns: []llm.Message{{Role: llm.RoleUser, Content: "a"}, {Role: llm.RoleAssistant, Content: "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := splitTurns(tt.turns)
			assert.Error(t, err)
		})
	}
}
