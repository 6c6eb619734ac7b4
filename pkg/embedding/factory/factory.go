package factory

import (
	"fmt"

	"portfolio-chatbot-be/pkg/embedding"
	"portfolio-chatbot-be/pkg/embedding/jina"
	"portfolio-chatbot-be/pkg/embedding/openai"
)

type Params struct {
	Provider      string
	Model         string
	OllamaBaseURL string
	BaseURL       string
	GeminiApiKey  string
	OpenAIApiKey  string
	JinaApiKey    string
}

func NewEmbeddingProvider(p Params) (embedding.EmbeddingProvider, error) {
	switch p.Provider {
	case "", "ollama":
		return embedding.NewOllamaProvider(p.OllamaBaseURL, p.Model), nil
	case "gemini":
		if p.GeminiApiKey == "" {
			return nil, fmt.Errorf("gemini embedding provider requires GOOGLE_GEMINI_API_KEY")
		}
		return embedding.NewGeminiProvider(p.GeminiApiKey, p.Model), nil
	case "jina":
		if p.JinaApiKey == "" {
			return nil, fmt.Errorf("jina embedding provider requires JINA_API_KEY")
		}
		return jina.NewJinaProvider(p.JinaApiKey, "", p.Model), nil
	case "openai":
		return openai.NewOpenAIProvider(p.OpenAIApiKey, p.BaseURL, p.Model), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", p.Provider)
	}
}
