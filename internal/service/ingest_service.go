package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"portfolio-chatbot-be/internal/dto"
	"portfolio-chatbot-be/internal/mapper"
	"portfolio-chatbot-be/internal/pkg/logger"
	"portfolio-chatbot-be/internal/pkg/serverutils"
	"portfolio-chatbot-be/pkg/events"
	"portfolio-chatbot-be/pkg/rag/indexer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IIngestService interface {
	Ingest(ctx context.Context, records []dto.ContentRecordDTO) (*dto.IngestResponse, error)
	IngestAsync(ctx context.Context, records []dto.ContentRecordDTO) (*dto.AsyncIngestResponse, error)
}

type ingestService struct {
	indexer   *indexer.Indexer
	publisher events.Publisher
	queue     message.Publisher
	topicName string
	mapper    *mapper.ContentRecordMapper
	logger    logger.ILogger
}

func NewIngestService(
	indexer *indexer.Indexer,
	publisher events.Publisher,
	queue message.Publisher,
	topicName string,
	logger logger.ILogger,
) IIngestService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ingestService{
		indexer:   indexer,
		publisher: publisher,
		queue:     queue,
		topicName: topicName,
		mapper:    mapper.NewContentRecordMapper(),
		logger:    logger,
	}
}

// validateRecords rejects the whole batch if any record is malformed.
func validateRecords(records []dto.ContentRecordDTO) error {
	if records == nil {
		return serverutils.NewValidationError("body must be an array of content records")
	}
	for i, r := range records {
		if err := serverutils.ValidateRequest(r); err != nil {
			return serverutils.NewValidationError("record %d: %s", i, err.Error())
		}
	}
	return nil
}

func (s *ingestService) Ingest(ctx context.Context, records []dto.ContentRecordDTO) (*dto.IngestResponse, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	result := s.indexer.IndexBatch(ctx, s.mapper.ToEntities(records))

	if err := s.publisher.Publish(ctx, events.NewContentIngestedEvent(result.Succeeded, result.Failed, time.Now())); err != nil {
		s.logger.Warn("INGEST", "Failed to publish event", map[string]interface{}{"error": err})
	}

	return &dto.IngestResponse{
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
	}, nil
}

// IngestAsync validates and queues the batch for the consumer.
func (s *ingestService) IngestAsync(ctx context.Context, records []dto.ContentRecordDTO) (*dto.AsyncIngestResponse, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}
	if s.queue == nil {
		return nil, fmt.Errorf("ingest queue is not configured")
	}

	payload, err := json.Marshal(dto.PublishIngestContentMessage{
		BatchId: uuid.NewString(),
		Records: records,
	})
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.queue.Publish(s.topicName, msg); err != nil {
		s.logger.Error("INGEST", "Failed to queue ingest batch", map[string]interface{}{"error": err})
		return nil, err
	}

	s.logger.Info("INGEST", "Queued ingest batch", map[string]interface{}{"records": len(records)})
	return &dto.AsyncIngestResponse{Queued: len(records)}, nil
}
