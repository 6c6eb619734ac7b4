package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/repository/contract"
	"portfolio-chatbot-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(opts ...Option) *Store {
	return NewStore(memory.NewSessionLogRepository(0), opts...)
}

func TestAppendEvictsOldestFirst(t *testing.T) {
	tests := []struct {
		name    string
		appends int
		wantLen int
	}{
		{name: "below capacity", appends: 3, wantLen: 3},
		{name: "at capacity", appends: 50, wantLen: 50},
		{name: "over capacity", appends: 73, wantLen: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newTestStore()

			for i := 0; i < tt.appends; i++ {
				require.NoError(t, s.Append(ctx, "k", "user", fmt.Sprintf("m%d", i)))
			}

			history, err := s.GetHistory(ctx, "k")
			require.NoError(t, err)
			require.Len(t, history, tt.wantLen)

			first := tt.appends - tt.wantLen
			for i, m := range history {
				assert.Equal(t, fmt.Sprintf("m%d", first+i), m.Content)
			}
		})
	}
}

func TestGetRecentContextIsSuffix(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	for _, n := range []int{0, 4, 15} {
		key := fmt.Sprintf("s%d", n)
		for i := 0; i < n; i++ {
			require.NoError(t, s.Append(ctx, key, "user", fmt.Sprintf("m%d", i)))
		}

		history, err := s.GetHistory(ctx, key)
		require.NoError(t, err)
		recent, err := s.GetRecentContext(ctx, key, 10)
		require.NoError(t, err)

		want := n
		if want > 10 {
			want = 10
		}
		require.Len(t, recent, want)
		assert.Equal(t, history[len(history)-want:], recent)
	}
}

func TestAppendAssignsTimestamp(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(WithClock(func() time.Time { return fixed }))

	require.NoError(t, s.Append(context.Background(), "k", "assistant", "hello"))

	history, err := s.GetHistory(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []entity.ChatMessage{{Role: "assistant", Content: "hello", Timestamp: fixed.UnixMilli()}}, history)
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Append(ctx, "a", "user", "only in a"))

	b, err := s.GetHistory(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestClearEmptiesLog(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Append(ctx, "k", "user", "hi"))
	require.NoError(t, s.Clear(ctx, "k"))

	history, err := s.GetHistory(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestConcurrentAppendsAreSerialized(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(WithMaxMessages(1000))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Append(ctx, "shared", "user", fmt.Sprintf("m%d", i)))
		}(i)
	}
	wg.Wait()

	history, err := s.GetHistory(ctx, "shared")
	require.NoError(t, err)
	assert.Len(t, history, 100)
	assert.Equal(t, 0, s.locks.size())
}

type failingRepo struct{}

func (failingRepo) Get(ctx context.Context, key string) ([]entity.ChatMessage, bool, error) {
	return nil, false, errors.New("storage down")
}

func (failingRepo) Put(ctx context.Context, key string, messages []entity.ChatMessage) error {
	return errors.New("storage down")
}

func TestStorageErrorsSurface(t *testing.T) {
	s := NewStore(failingRepo{})

	assert.Error(t, s.Append(context.Background(), "k", "user", "hi"))
	assert.Error(t, s.Clear(context.Background(), "k"))
	_, err := s.GetHistory(context.Background(), "k")
	assert.Error(t, err)
}

type countingRepo struct {
	contract.SessionLogRepository
	mu      sync.Mutex
	puts    int
	failPut bool
}

func (r *countingRepo) Put(ctx context.Context, key string, messages []entity.ChatMessage) error {
	r.mu.Lock()
	r.puts++
	fail := r.failPut
	r.mu.Unlock()
	if fail {
		return errors.New("storage down")
	}
	return r.SessionLogRepository.Put(ctx, key, messages)
}

func TestAppendTurnWritesBothMessagesOnce(t *testing.T) {
	ctx := context.Background()
	repo := &countingRepo{SessionLogRepository: memory.NewSessionLogRepository(0)}
	s := NewStore(repo, WithMaxMessages(3))

	require.NoError(t, s.Append(ctx, "k", "user", "m0"))
	require.NoError(t, s.Append(ctx, "k", "assistant", "m1"))
	require.NoError(t, s.AppendTurn(ctx, "k", "question", "answer"))

	assert.Equal(t, 3, repo.puts)

	history, err := s.GetHistory(ctx, "k")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "m1", history[0].Content)
	assert.Equal(t, entity.ChatMessage{Role: "user", Content: "question", Timestamp: history[1].Timestamp}, history[1])
	assert.Equal(t, "assistant", history[2].Role)
	assert.Equal(t, "answer", history[2].Content)
}

func TestAppendTurnFailureLeavesLogUntouched(t *testing.T) {
	ctx := context.Background()
	repo := &countingRepo{SessionLogRepository: memory.NewSessionLogRepository(0)}
	s := NewStore(repo)

	require.NoError(t, s.Append(ctx, "k", "user", "earlier"))
	repo.failPut = true

	assert.Error(t, s.AppendTurn(ctx, "k", "q", "a"))

	history, err := s.GetHistory(ctx, "k")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "earlier", history[0].Content)
}
