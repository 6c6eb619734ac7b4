package search

import (
	"context"

	"portfolio-chatbot-be/internal/constant"
	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/pkg/logger"
	"portfolio-chatbot-be/internal/repository/contract"
	"portfolio-chatbot-be/pkg/embedding"
)

// Retriever embeds a query and returns the nearest content records.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	repo              contract.ContentEmbeddingRepository
	logger            logger.ILogger
}

func NewRetriever(
	embeddingProvider embedding.EmbeddingProvider,
	repo contract.ContentEmbeddingRepository,
	logger logger.ILogger,
) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		repo:              repo,
		logger:            logger,
	}
}

// Retrieve returns up to topK matches in the store's descending-score order.
// Any embedding or store failure yields an empty result.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) []entity.SearchMatch {
	if topK <= 0 {
		topK = constant.RetrievalTopK
	}

	embeddingRes, err := r.embeddingProvider.Generate(ctx, query, embedding.TaskTypeRetrievalQuery)
	if err != nil {
		r.logger.Warn("RETRIEVER", "Query embedding failed", map[string]interface{}{"error": err})
		return []entity.SearchMatch{}
	}

	scored, err := r.repo.SearchSimilarWithScore(ctx, embeddingRes.Embedding.Values, topK)
	if err != nil {
		r.logger.Warn("RETRIEVER", "Vector search failed", map[string]interface{}{"error": err})
		return []entity.SearchMatch{}
	}

	matches := make([]entity.SearchMatch, 0, len(scored))
	for _, s := range scored {
		if s == nil || s.Embedding == nil {
			continue
		}
		matches = append(matches, entity.SearchMatch{
			Id:       s.Embedding.Id,
			Score:    s.Similarity,
			Metadata: s.Embedding.Metadata,
		})
	}

	r.logger.Debug("RETRIEVER", "Vector search finished", map[string]interface{}{
		"top_k":   topK,
		"matches": len(matches),
	})
	return matches
}
