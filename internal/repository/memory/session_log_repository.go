package memory

import (
	"context"
	"time"

	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type SessionLogRepository struct {
	cache *cache.Cache
}

// NewSessionLogRepository keeps logs in process. A zero ttl keeps them until restart.
func NewSessionLogRepository(ttl time.Duration) contract.SessionLogRepository {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = 10 * time.Minute
	}
	return &SessionLogRepository{
		cache: cache.New(expiration, cleanup),
	}
}

func (r *SessionLogRepository) Get(_ context.Context, key string) ([]entity.ChatMessage, bool, error) {
	x, found := r.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	return copyMessages(x.([]entity.ChatMessage)), true, nil
}

func (r *SessionLogRepository) Put(_ context.Context, key string, messages []entity.ChatMessage) error {
	r.cache.Set(key, copyMessages(messages), cache.DefaultExpiration)
	return nil
}

// copyMessages detaches stored logs from caller-owned slices.
func copyMessages(messages []entity.ChatMessage) []entity.ChatMessage {
	out := make([]entity.ChatMessage, len(messages))
	copy(out, messages)
	return out
}
