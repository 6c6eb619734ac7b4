package contract

import (
	"context"

	"portfolio-chatbot-be/internal/entity"
)

// SessionLogRepository is durable per-key storage for session message logs.
// Put replaces the whole log; a later Get never observes a partial write.
type SessionLogRepository interface {
	Get(ctx context.Context, key string) ([]entity.ChatMessage, bool, error)
	Put(ctx context.Context, key string, messages []entity.ChatMessage) error
}
