package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"portfolio-chatbot-be/internal/constant"
	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

// RedisSessionLogRepository keeps each log as one JSON string so SET replaces it atomically.
type RedisSessionLogRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSessionLogRepository stores logs without expiry when ttl is zero.
func NewRedisSessionLogRepository(rdb *redis.Client, ttl time.Duration) contract.SessionLogRepository {
	return &RedisSessionLogRepository{
		rdb: rdb,
		ttl: ttl,
	}
}

func (r *RedisSessionLogRepository) key(sessionKey string) string {
	return constant.SessionStorageKeyBase + sessionKey
}

func (r *RedisSessionLogRepository) Get(ctx context.Context, key string) ([]entity.ChatMessage, bool, error) {
	data, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var messages []entity.ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, false, err
	}
	return messages, true, nil
}

func (r *RedisSessionLogRepository) Put(ctx context.Context, key string, messages []entity.ChatMessage) error {
	if messages == nil {
		messages = []entity.ChatMessage{}
	}

	data, err := json.Marshal(messages)
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, r.key(key), data, r.ttl).Err()
}
