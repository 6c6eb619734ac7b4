package session

import (
	"context"
	"fmt"
	"time"

	"portfolio-chatbot-be/internal/constant"
	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/repository/contract"
)

// Store is the per-session message log. Every operation on a key runs under
// that key's lock; different keys never contend.
type Store struct {
	repo        contract.SessionLogRepository
	locks       *keyedMutex
	maxMessages int
	now         func() time.Time
}

type Option func(*Store)

// WithMaxMessages overrides the stored log capacity.
func WithMaxMessages(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxMessages = n
		}
	}
}

// WithClock replaces time.Now for timestamp assignment.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(repo contract.SessionLogRepository, opts ...Option) *Store {
	s := &Store{
		repo:        repo,
		locks:       newKeyedMutex(),
		maxMessages: constant.SessionMaxMessages,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) load(ctx context.Context, key string) ([]entity.ChatMessage, error) {
	messages, found, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", key, err)
	}
	if !found || messages == nil {
		return []entity.ChatMessage{}, nil
	}
	return messages, nil
}

// GetHistory returns the full stored log, oldest first.
func (s *Store) GetHistory(ctx context.Context, key string) ([]entity.ChatMessage, error) {
	unlock := s.locks.Lock(key)
	defer unlock()

	return s.load(ctx, key)
}

// GetRecentContext returns the last n stored messages in stored order.
func (s *Store) GetRecentContext(ctx context.Context, key string, n int) ([]entity.ChatMessage, error) {
	unlock := s.locks.Lock(key)
	defer unlock()

	messages, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if len(messages) > n {
		messages = messages[len(messages)-n:]
	}
	return messages, nil
}

// Append timestamps the message, evicts from the front past capacity and
// persists the whole log in one Put.
func (s *Store) Append(ctx context.Context, key, role, content string) error {
	return s.appendMessages(ctx, key, entity.ChatMessage{Role: role, Content: content})
}

// AppendTurn stores the user message followed by the assistant reply with a
// single Put, so a failed write never leaves half a turn behind.
func (s *Store) AppendTurn(ctx context.Context, key, userContent, assistantContent string) error {
	return s.appendMessages(ctx, key,
		entity.ChatMessage{Role: constant.ChatMessageRoleUser, Content: userContent},
		entity.ChatMessage{Role: constant.ChatMessageRoleAssistant, Content: assistantContent},
	)
}

func (s *Store) appendMessages(ctx context.Context, key string, added ...entity.ChatMessage) error {
	unlock := s.locks.Lock(key)
	defer unlock()

	messages, err := s.load(ctx, key)
	if err != nil {
		return err
	}

	ts := s.now().UnixMilli()
	next := make([]entity.ChatMessage, 0, len(messages)+len(added))
	next = append(next, messages...)
	for _, m := range added {
		m.Timestamp = ts
		next = append(next, m)
	}
	if overflow := len(next) - s.maxMessages; overflow > 0 {
		next = next[overflow:]
	}

	if err := s.repo.Put(ctx, key, next); err != nil {
		return fmt.Errorf("persist session %q: %w", key, err)
	}
	return nil
}

// Clear replaces the log with an empty one.
func (s *Store) Clear(ctx context.Context, key string) error {
	unlock := s.locks.Lock(key)
	defer unlock()

	if err := s.repo.Put(ctx, key, []entity.ChatMessage{}); err != nil {
		return fmt.Errorf("clear session %q: %w", key, err)
	}
	return nil
}
