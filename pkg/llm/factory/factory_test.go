package factory

import (
	"context"
	"testing"

	"portfolio-chatbot-be/pkg/llm"
	"portfolio-chatbot-be/pkg/llm/anthropic"
	"portfolio-chatbot-be/pkg/llm/ollama"
	"portfolio-chatbot-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		wantType llm.LLMProvider
		wantErr  bool
	}{
		{name: "default ollama", params: Params{Model: "llama3"}, wantType: &ollama.OllamaProvider{}},
		{name: "openai", params: Params{Provider: "openai", OpenAIApiKey: "sk"}, wantType: &openai.OpenAIProvider{}},
		{name: "openai without key or url", params: Params{Provider: "openai"}, wantErr: true},
		{name: "huggingface via router", params: Params{Provider: "huggingface", HuggingFaceKey: "hf"}, wantType: &openai.OpenAIProvider{}},
		{name: "anthropic", params: Params{Provider: "anthropic", AnthropicApiKey: "k"}, wantType: &anthropic.AnthropicProvider{}},
		{name: "anthropic without key", params: Params{Provider: "anthropic"}, wantErr: true},
		{name: "gemini without key", params: Params{Provider: "gemini"}, wantErr: true},
		{name: "unknown", params: Params{Provider: "eliza"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLLMProvider(context.Background(), tt.params)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, p)
		})
	}
}
