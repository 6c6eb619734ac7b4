package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"portfolio-chatbot-be/internal/dto"
	"portfolio-chatbot-be/internal/pkg/logger"
	"portfolio-chatbot-be/internal/pkg/serverutils"
	"portfolio-chatbot-be/internal/repository/memory"
	"portfolio-chatbot-be/pkg/rag/indexer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentRecords(n int) []dto.ContentRecordDTO {
	out := make([]dto.ContentRecordDTO, n)
	for i := range out {
		out[i] = dto.ContentRecordDTO{
			Id:       fmt.Sprintf("proj-%d", i+1),
			Category: "project",
			Text:     fmt.Sprintf("project %d", i+1),
			Metadata: map[string]interface{}{"title": fmt.Sprintf("P%d", i+1)},
		}
	}
	return out
}

func TestIngestCountsPartialFailures(t *testing.T) {
	repo := memory.NewContentEmbeddingRepository()
	ix := indexer.NewIndexer(&stubEmbedder{failOn: "project 7"}, repo, logger.NewNopLogger())
	publisher := &recordingPublisher{}
	svc := NewIngestService(ix, publisher, nil, "ingest", logger.NewNopLogger())

	res, err := svc.Ingest(context.Background(), contentRecords(12))
	require.NoError(t, err)

	assert.Equal(t, &dto.IngestResponse{Succeeded: 11, Failed: 1}, res)
	assert.Equal(t, 11, repo.Len())
	assert.Equal(t, 1, publisher.count())
}

func TestIngestRejectsMalformedBatch(t *testing.T) {
	tests := []struct {
		name    string
		records []dto.ContentRecordDTO
	}{
		{name: "nil body", records: nil},
		{name: "missing id", records: []dto.ContentRecordDTO{{Category: "work", Text: "x"}}},
		{name: "unknown category", records: []dto.ContentRecordDTO{{Id: "a", Category: "hobby", Text: "x"}}},
		{name: "one bad among good", records: append(contentRecords(2), dto.ContentRecordDTO{Id: "z", Category: "skill"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewContentEmbeddingRepository()
			ix := indexer.NewIndexer(&stubEmbedder{}, repo, logger.NewNopLogger())
			svc := NewIngestService(ix, nil, nil, "ingest", logger.NewNopLogger())

			_, err := svc.Ingest(context.Background(), tt.records)
			assert.ErrorIs(t, err, serverutils.ErrValidation)
			assert.Equal(t, 0, repo.Len())
		})
	}
}

func TestIngestAsyncIsConsumed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	repo := memory.NewContentEmbeddingRepository()
	ix := indexer.NewIndexer(&stubEmbedder{}, repo, logger.NewNopLogger())
	publisher := &recordingPublisher{}

	consumer := NewConsumerService(pubSub, "ingest", ix, publisher, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	svc := NewIngestService(ix, nil, pubSub, "ingest", logger.NewNopLogger())
	res, err := svc.IngestAsync(ctx, contentRecords(3))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Queued)

	assert.Eventually(t, func() bool { return repo.Len() == 3 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return publisher.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestIngestAsyncWithoutQueue(t *testing.T) {
	ix := indexer.NewIndexer(&stubEmbedder{}, memory.NewContentEmbeddingRepository(), logger.NewNopLogger())
	svc := NewIngestService(ix, nil, nil, "ingest", logger.NewNopLogger())

	_, err := svc.IngestAsync(context.Background(), contentRecords(1))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, serverutils.ErrValidation)
}
