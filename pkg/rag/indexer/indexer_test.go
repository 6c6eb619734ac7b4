package indexer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/pkg/logger"
	"portfolio-chatbot-be/internal/repository/memory"
	"portfolio-chatbot-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	failOn   map[string]bool
	inFlight atomic.Int32
	peak     atomic.Int32
	mu       sync.Mutex
	tasks    []string
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	f.mu.Lock()
	f.tasks = append(f.tasks, taskType)
	f.mu.Unlock()

	if f.failOn[text] {
		return nil, errors.New("embedding quota exceeded")
	}
	return embedding.NewResponse([]float32{1, 0}), nil
}

func records(n int) []entity.ContentRecord {
	out := make([]entity.ContentRecord, n)
	for i := range out {
		out[i] = entity.ContentRecord{
			Id:       fmt.Sprintf("rec-%d", i+1),
			Category: entity.ContentCategoryProject,
			Text:     fmt.Sprintf("text %d", i+1),
		}
	}
	return out
}

func TestIndexBatchIsolatesFailures(t *testing.T) {
	embedder := &fakeEmbedder{failOn: map[string]bool{"text 7": true}}
	repo := memory.NewContentEmbeddingRepository()
	ix := NewIndexer(embedder, repo, logger.NewNopLogger())

	result := ix.IndexBatch(context.Background(), records(12))

	assert.Equal(t, BatchResult{Succeeded: 11, Failed: 1}, result)
	assert.Equal(t, 11, repo.Len())
	assert.LessOrEqual(t, int(embedder.peak.Load()), 10)
	for _, task := range embedder.tasks {
		assert.Equal(t, embedding.TaskTypeRetrievalDocument, task)
	}
}

func TestIndexBatchRespectsChunkSize(t *testing.T) {
	embedder := &fakeEmbedder{}
	ix := NewIndexer(embedder, memory.NewContentEmbeddingRepository(), logger.NewNopLogger(), WithChunkSize(3))

	result := ix.IndexBatch(context.Background(), records(8))

	assert.Equal(t, BatchResult{Succeeded: 8}, result)
	assert.LessOrEqual(t, int(embedder.peak.Load()), 3)
}

func TestIndexStoresCategoryAndText(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]interface{}
		want     map[string]interface{}
	}{
		{
			name:     "record keys sit next to category and text",
			metadata: map[string]interface{}{"title": "Engineer"},
			want: map[string]interface{}{
				"category": "work",
				"text":     "Backend engineer at Acme",
				"title":    "Engineer",
			},
		},
		{
			name:     "record keys override category and text",
			metadata: map[string]interface{}{"text": "meta-text", "category": "meta-cat"},
			want: map[string]interface{}{
				"category": "meta-cat",
				"text":     "meta-text",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewContentEmbeddingRepository()
			ix := NewIndexer(&fakeEmbedder{}, repo, logger.NewNopLogger())

			ok := ix.Index(context.Background(), entity.ContentRecord{
				Id:       "work-1",
				Category: entity.ContentCategoryWork,
				Text:     "Backend engineer at Acme",
				Metadata: tt.metadata,
			})
			require.True(t, ok)

			got, err := repo.SearchSimilarWithScore(context.Background(), []float32{1, 0}, 1)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Embedding.Metadata)
			assert.Equal(t, "Backend engineer at Acme", got[0].Embedding.Document)
		})
	}
}

func TestIndexBatchStopsOnCancelledContext(t *testing.T) {
	ix := NewIndexer(&fakeEmbedder{}, memory.NewContentEmbeddingRepository(), logger.NewNopLogger(),
		WithChunkSize(2), WithChunksPerSecond(0.001))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := ix.IndexBatch(ctx, records(4))
	assert.Equal(t, 4, result.Succeeded+result.Failed)
	assert.Equal(t, 4, result.Failed)
}

func TestIndexBatchEmpty(t *testing.T) {
	ix := NewIndexer(&fakeEmbedder{}, memory.NewContentEmbeddingRepository(), logger.NewNopLogger())
	assert.Equal(t, BatchResult{}, ix.IndexBatch(context.Background(), nil))
}
