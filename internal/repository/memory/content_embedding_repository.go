package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/repository/contract"
)

// ContentEmbeddingRepository is a brute-force cosine index used when no
// database is configured and in tests.
type ContentEmbeddingRepository struct {
	mtx  sync.RWMutex
	rows map[string]*entity.ContentEmbedding
}

func NewContentEmbeddingRepository() *ContentEmbeddingRepository {
	return &ContentEmbeddingRepository{
		rows: map[string]*entity.ContentEmbedding{},
	}
}

func (r *ContentEmbeddingRepository) Upsert(_ context.Context, embedding *entity.ContentEmbedding) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	now := time.Now()
	row := *embedding
	row.Vector = append([]float32(nil), embedding.Vector...)
	row.Metadata = copyMetadata(embedding.Metadata)

	if existing, ok := r.rows[embedding.Id]; ok {
		row.CreatedAt = existing.CreatedAt
		row.UpdatedAt = &now
	} else if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}

	r.rows[embedding.Id] = &row
	return nil
}

func (r *ContentEmbeddingRepository) SearchSimilarWithScore(_ context.Context, vector []float32, limit int) ([]*contract.ScoredContentEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	r.mtx.RLock()
	scored := make([]*contract.ScoredContentEmbedding, 0, len(r.rows))
	for _, row := range r.rows {
		clone := *row
		clone.Metadata = copyMetadata(row.Metadata)
		scored = append(scored, &contract.ScoredContentEmbedding{
			Embedding:  &clone,
			Similarity: cosineSimilarity(vector, row.Vector),
		})
	}
	r.mtx.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Similarity == scored[j].Similarity {
			return scored[i].Embedding.Id < scored[j].Embedding.Id
		}
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// Len reports the number of stored rows.
func (r *ContentEmbeddingRepository) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.rows)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func copyMetadata(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
