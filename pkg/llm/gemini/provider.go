package gemini

import (
	"context"
	"fmt"
	"strings"

	"portfolio-chatbot-be/pkg/llm"

	"github.com/google/generative-ai-go/genai"
	genaiopt "google.golang.org/api/option"
)

const roleModel = "model"

type GeminiProvider struct {
	client *genai.Client
	model  string
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, genaiopt.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// splitTurns converts all but the final user turn into chat history.
func splitTurns(turns []llm.Message) ([]*genai.Content, string, error) {
	if len(turns) == 0 || turns[len(turns)-1].Role != llm.RoleUser {
		return nil, "", fmt.Errorf("gemini: history must end with a user turn")
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for _, m := range turns[:len(turns)-1] {
		role := llm.RoleUser
		if m.Role == llm.RoleAssistant {
			role = roleModel
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return history, turns[len(turns)-1].Content, nil
}

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{Temperature: 0.7, MaxTokens: 1024, Model: p.model}, opts...)

	system, turns := llm.SplitSystem(history)
	past, last, err := splitTurns(turns)
	if err != nil {
		return "", err
	}

	model := p.client.GenerativeModel(options.Model)
	model.SetTemperature(float32(options.Temperature))
	model.SetMaxOutputTokens(int32(options.MaxTokens))
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := model.StartChat()
	cs.History = past

	rsp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", fmt.Errorf("gemini send message: %w", err)
	}

	if len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil {
		return "", llm.ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range rsp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", llm.ErrEmptyResponse
	}
	return b.String(), nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}
