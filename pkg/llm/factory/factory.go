package factory

import (
	"context"
	"fmt"

	"portfolio-chatbot-be/pkg/llm"
	"portfolio-chatbot-be/pkg/llm/anthropic"
	"portfolio-chatbot-be/pkg/llm/gemini"
	"portfolio-chatbot-be/pkg/llm/ollama"
	"portfolio-chatbot-be/pkg/llm/openai"
)

const huggingFaceRouterURL = "https://router.huggingface.co/v1"

type Params struct {
	Provider        string
	Model           string
	BaseURL         string
	OpenAIApiKey    string
	AnthropicApiKey string
	GeminiApiKey    string
	HuggingFaceKey  string
}

func NewLLMProvider(ctx context.Context, p Params) (llm.LLMProvider, error) {
	switch p.Provider {
	case "", "ollama":
		return ollama.NewOllamaProvider(p.BaseURL, p.Model), nil
	case "openai":
		if p.OpenAIApiKey == "" && p.BaseURL == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY or LLM_BASE_URL")
		}
		return openai.NewOpenAIProvider(p.OpenAIApiKey, p.BaseURL, p.Model), nil
	case "huggingface":
		baseURL := p.BaseURL
		if baseURL == "" {
			baseURL = huggingFaceRouterURL
		}
		return openai.NewOpenAIProvider(p.HuggingFaceKey, baseURL, p.Model), nil
	case "anthropic":
		if p.AnthropicApiKey == "" {
			return nil, fmt.Errorf("anthropic provider requires ANTHROPIC_API_KEY")
		}
		return anthropic.NewAnthropicProvider(p.AnthropicApiKey, p.BaseURL, p.Model), nil
	case "gemini":
		if p.GeminiApiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(ctx, p.GeminiApiKey, p.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", p.Provider)
	}
}
