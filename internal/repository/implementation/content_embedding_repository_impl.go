package implementation

import (
	"context"

	"portfolio-chatbot-be/internal/constant"
	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/mapper"
	"portfolio-chatbot-be/internal/model"
	"portfolio-chatbot-be/internal/repository/contract"
	"portfolio-chatbot-be/internal/repository/scope"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentEmbeddingMapper
}

func NewContentEmbeddingRepository(db *gorm.DB) contract.ContentEmbeddingRepository {
	return &ContentEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentEmbeddingMapper(),
	}
}

func (r *ContentEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.ContentEmbedding) error {
	m, err := r.mapper.ToModel(embedding)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"category", "document", "embedding_value", "metadata", "updated_at"}),
		}).
		Create(m).Error
}

// SearchSimilarWithScore ranks rows by cosine similarity.
// pgvector's <=> is cosine distance, so similarity = 1 - distance.
func (r *ContentEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, vector []float32, limit int) ([]*contract.ScoredContentEmbedding, error) {
	type result struct {
		model.ContentEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table("content_embeddings").
		Select("content_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Scopes(scope.OrderBySimilarityDesc, scope.Limit(limit, constant.RetrievalTopK)).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredContentEmbedding, len(results))
	for i := range results {
		scored[i] = &contract.ScoredContentEmbedding{
			Embedding:  r.mapper.ToEntity(&results[i].ContentEmbedding),
			Similarity: results[i].Similarity,
		}
	}
	return scored, nil
}
