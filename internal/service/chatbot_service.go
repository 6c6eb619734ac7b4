package service

import (
	"context"
	"strings"
	"time"

	"portfolio-chatbot-be/internal/constant"
	"portfolio-chatbot-be/internal/dto"
	"portfolio-chatbot-be/internal/pkg/logger"
	"portfolio-chatbot-be/internal/pkg/serverutils"
	"portfolio-chatbot-be/pkg/events"
	"portfolio-chatbot-be/pkg/llm"
	"portfolio-chatbot-be/pkg/rag/prompt"
	"portfolio-chatbot-be/pkg/rag/search"
	"portfolio-chatbot-be/pkg/rag/session"

	"github.com/google/uuid"
)

type IChatbotService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ClearSession(ctx context.Context, request *dto.ClearSessionRequest) (*dto.ClearSessionResponse, error)
	GetChatHistory(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error)
}

type chatbotService struct {
	sessionStore *session.Store
	retriever    *search.Retriever
	llmProvider  llm.LLMProvider
	publisher    events.Publisher
	logger       logger.ILogger
	newKey       func() string
}

func NewChatbotService(
	sessionStore *session.Store,
	retriever *search.Retriever,
	llmProvider llm.LLMProvider,
	publisher events.Publisher,
	logger logger.ILogger,
) IChatbotService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &chatbotService{
		sessionStore: sessionStore,
		retriever:    retriever,
		llmProvider:  llmProvider,
		publisher:    publisher,
		logger:       logger,
		newKey:       uuid.NewString,
	}
}

func (cs *chatbotService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	if strings.TrimSpace(request.Message) == "" {
		return nil, serverutils.NewValidationError("message is required")
	}

	sessionKey := request.SessionId
	if sessionKey == "" {
		sessionKey = cs.newKey()
	}

	recent, err := cs.sessionStore.GetRecentContext(ctx, sessionKey, constant.SessionRecentContext)
	if err != nil {
		cs.logger.Error("CHATBOT", "Failed to load session history", map[string]interface{}{
			"session_id": sessionKey,
			"error":      err,
		})
		return nil, err
	}

	matches := cs.retriever.Retrieve(ctx, request.Message, constant.RetrievalTopK)
	messages := prompt.BuildChatMessages(prompt.FormatContext(matches), recent, request.Message)

	reply, fallback := cs.generate(ctx, sessionKey, messages)

	if err := cs.sessionStore.AppendTurn(ctx, sessionKey, request.Message, reply); err != nil {
		cs.logger.Error("CHATBOT", "Failed to persist chat turn", map[string]interface{}{
			"session_id": sessionKey,
			"error":      err,
		})
		return nil, err
	}

	cs.publish(ctx, events.NewChatTurnEvent(sessionKey, len(matches), fallback, time.Now()))

	return &dto.SendChatResponse{
		Response:  reply,
		SessionId: sessionKey,
	}, nil
}

// generate never fails: provider errors and blank output become the fallback text.
func (cs *chatbotService) generate(ctx context.Context, sessionKey string, messages []llm.Message) (string, bool) {
	reply, err := cs.llmProvider.Chat(ctx, messages,
		llm.WithMaxTokens(constant.GenerationMaxTokens),
		llm.WithTemperature(constant.GenerationTemperature),
	)
	if err != nil {
		cs.logger.Warn("CHATBOT", "Generation failed, using fallback", map[string]interface{}{
			"session_id": sessionKey,
			"error":      err,
		})
		return constant.ChatFallbackNoResponse, true
	}
	if strings.TrimSpace(reply) == "" {
		cs.logger.Warn("CHATBOT", "Generation returned no text, using fallback", map[string]interface{}{
			"session_id": sessionKey,
		})
		return constant.ChatFallbackNoResponse, true
	}
	return reply, false
}

func (cs *chatbotService) ClearSession(ctx context.Context, request *dto.ClearSessionRequest) (*dto.ClearSessionResponse, error) {
	if strings.TrimSpace(request.SessionId) == "" {
		return nil, serverutils.NewValidationError("sessionId is required")
	}

	if err := cs.sessionStore.Clear(ctx, request.SessionId); err != nil {
		cs.logger.Error("CHATBOT", "Failed to clear session", map[string]interface{}{
			"session_id": request.SessionId,
			"error":      err,
		})
		return nil, err
	}

	return &dto.ClearSessionResponse{Success: true}, nil
}

func (cs *chatbotService) GetChatHistory(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error) {
	if strings.TrimSpace(sessionId) == "" {
		return nil, serverutils.NewValidationError("sessionId is required")
	}

	history, err := cs.sessionStore.GetHistory(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	messages := make([]dto.ChatMessageDTO, len(history))
	for i, m := range history {
		messages[i] = dto.ChatMessageDTO{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		}
	}

	return &dto.GetChatHistoryResponse{
		SessionId: sessionId,
		Messages:  messages,
	}, nil
}

func (cs *chatbotService) publish(ctx context.Context, event events.Event) {
	if err := cs.publisher.Publish(ctx, event); err != nil {
		cs.logger.Warn("CHATBOT", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err,
		})
	}
}
