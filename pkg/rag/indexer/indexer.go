package indexer

import (
	"context"
	"sync"
	"sync/atomic"

	"portfolio-chatbot-be/internal/constant"
	"portfolio-chatbot-be/internal/entity"
	"portfolio-chatbot-be/internal/pkg/logger"
	"portfolio-chatbot-be/internal/repository/contract"
	"portfolio-chatbot-be/pkg/embedding"

	"golang.org/x/time/rate"
)

type BatchResult struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Indexer embeds content records and upserts them into the vector store.
type Indexer struct {
	embeddingProvider embedding.EmbeddingProvider
	repo              contract.ContentEmbeddingRepository
	logger            logger.ILogger
	chunkSize         int
	limiter           *rate.Limiter
}

type Option func(*Indexer)

func WithChunkSize(n int) Option {
	return func(ix *Indexer) {
		if n > 0 {
			ix.chunkSize = n
		}
	}
}

// WithChunksPerSecond paces chunk starts. Zero or less disables pacing.
func WithChunksPerSecond(r float64) Option {
	return func(ix *Indexer) {
		if r > 0 {
			ix.limiter = rate.NewLimiter(rate.Limit(r), 1)
		}
	}
}

func NewIndexer(
	embeddingProvider embedding.EmbeddingProvider,
	repo contract.ContentEmbeddingRepository,
	logger logger.ILogger,
	opts ...Option,
) *Indexer {
	ix := &Indexer{
		embeddingProvider: embeddingProvider,
		repo:              repo,
		logger:            logger,
		chunkSize:         constant.IngestChunkSize,
		limiter:           rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// vectorMetadata stores category and text next to the record's own keys.
// Record keys win on collision, category and text included.
func vectorMetadata(record entity.ContentRecord) map[string]interface{} {
	metadata := make(map[string]interface{}, len(record.Metadata)+2)
	metadata["category"] = string(record.Category)
	metadata["text"] = record.Text
	for k, v := range record.Metadata {
		metadata[k] = v
	}
	return metadata
}

// Index embeds and upserts one record. Failures are logged and reported as false.
func (ix *Indexer) Index(ctx context.Context, record entity.ContentRecord) bool {
	embeddingRes, err := ix.embeddingProvider.Generate(ctx, record.Text, embedding.TaskTypeRetrievalDocument)
	if err != nil {
		ix.logger.Error("INDEXER", "Failed to embed content record", map[string]interface{}{
			"id":    record.Id,
			"error": err,
		})
		return false
	}

	err = ix.repo.Upsert(ctx, &entity.ContentEmbedding{
		Id:       record.Id,
		Category: record.Category,
		Document: record.Text,
		Vector:   embeddingRes.Embedding.Values,
		Metadata: vectorMetadata(record),
	})
	if err != nil {
		ix.logger.Error("INDEXER", "Failed to upsert content embedding", map[string]interface{}{
			"id":    record.Id,
			"error": err,
		})
		return false
	}

	return true
}

// IndexBatch indexes records chunk by chunk. Records within a chunk run
// concurrently and one failure never cancels its siblings.
func (ix *Indexer) IndexBatch(ctx context.Context, records []entity.ContentRecord) BatchResult {
	var succeeded, failed atomic.Int64

	for start := 0; start < len(records); start += ix.chunkSize {
		end := start + ix.chunkSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]

		if err := ix.limiter.Wait(ctx); err != nil {
			ix.logger.Warn("INDEXER", "Batch stopped before completion", map[string]interface{}{
				"error":     err,
				"remaining": len(records) - start,
			})
			failed.Add(int64(len(records) - start))
			break
		}

		var wg sync.WaitGroup
		for _, record := range chunk {
			wg.Add(1)
			go func(record entity.ContentRecord) {
				defer wg.Done()
				if ix.Index(ctx, record) {
					succeeded.Add(1)
				} else {
					failed.Add(1)
				}
			}(record)
		}
		wg.Wait()
	}

	result := BatchResult{
		Succeeded: int(succeeded.Load()),
		Failed:    int(failed.Load()),
	}
	ix.logger.Info("INDEXER", "Batch indexing finished", map[string]interface{}{
		"total":     len(records),
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
	})
	return result
}
