package search

import (
	"context"
	"errors"
	"testing"

	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/pkg/logger"
	"portfolio-chatbot-be/internal/repository/contract"
	"portfolio-chatbot-be/internal/repository/memory"
	"portfolio-chatbot-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	gotTask string
}

func (s *stubEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	s.gotTask = taskType
	if s.err != nil {
		return nil, s.err
	}
	return embedding.NewResponse(s.vectors[text]), nil
}

type brokenRepo struct{}

func (brokenRepo) Upsert(ctx context.Context, e *entity.ContentEmbedding) error { return nil }

func (brokenRepo) SearchSimilarWithScore(ctx context.Context, v []float32, limit int) ([]*contract.ScoredContentEmbedding, error) {
	return nil, errors.New("index unavailable")
}

func seededRepo(t *testing.T) *memory.ContentEmbeddingRepository {
	repo := memory.NewContentEmbeddingRepository()
	rows := []*entity.ContentEmbedding{
		{Id: "edu-1", Vector: []float32{1, 0}, Metadata: map[string]interface{}{"category": "education", "text": "BSc Computer Science"}},
		{Id: "work-1", Vector: []float32{0, 1}, Metadata: map[string]interface{}{"category": "work", "text": "Backend engineer"}},
		{Id: "proj-1", Vector: []float32{0.7, 0.7}, Metadata: map[string]interface{}{"category": "project", "text": "Chatbot"}},
	}
	for _, row := range rows {
		require.NoError(t, repo.Upsert(context.Background(), row))
	}
	return repo
}

func TestRetrieveOrdersByScore(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{"school?": {1, 0}}}
	r := NewRetriever(embedder, seededRepo(t), logger.NewNopLogger())

	matches := r.Retrieve(context.Background(), "school?", 2)

	require.Len(t, matches, 2)
	assert.Equal(t, "edu-1", matches[0].Id)
	assert.Equal(t, "proj-1", matches[1].Id)
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
	assert.Equal(t, "BSc Computer Science", matches[0].Metadata["text"])
	assert.Equal(t, embedding.TaskTypeRetrievalQuery, embedder.gotTask)
}

func TestRetrieveDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name     string
		embedder embedding.EmbeddingProvider
		repo     contract.ContentEmbeddingRepository
	}{
		{name: "embedding failure", embedder: &stubEmbedder{err: errors.New("quota")}, repo: seededRepo(t)},
		{name: "store failure", embedder: &stubEmbedder{vectors: map[string][]float32{"q": {1, 0}}}, repo: brokenRepo{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRetriever(tt.embedder, tt.repo, logger.NewNopLogger())
			matches := r.Retrieve(context.Background(), "q", 5)
			assert.NotNil(t, matches)
			assert.Empty(t, matches)
		})
	}
}
