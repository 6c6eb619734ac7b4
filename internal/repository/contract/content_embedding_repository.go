package contract

import (
	"context"

	"portfolio-chatbot-be/internal/entity"
)

// ScoredContentEmbedding wraps ContentEmbedding with its similarity score
type ScoredContentEmbedding struct {
	Embedding  *entity.ContentEmbedding
	Similarity float64 // higher is more relevant
}

// ContentEmbeddingRepository is the vector store behind indexing and retrieval.
type ContentEmbeddingRepository interface {
	// Upsert inserts the embedding or overwrites the row with the same Id.
	Upsert(ctx context.Context, embedding *entity.ContentEmbedding) error
	// SearchSimilarWithScore returns up to limit rows ordered by descending similarity.
	SearchSimilarWithScore(ctx context.Context, vector []float32, limit int) ([]*ScoredContentEmbedding, error)
}
