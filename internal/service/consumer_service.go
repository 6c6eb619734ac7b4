package service

import (
	"context"
	"encoding/json"
	"time"

	"portfolio-chatbot-be/internal/dto"
	"portfolio-chatbot-be/internal/mapper"
	"portfolio-chatbot-be/internal/pkg/logger"
	"portfolio-chatbot-be/pkg/events"
	"portfolio-chatbot-be/pkg/rag/indexer"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains queued ingest batches into the indexer.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	indexer    *indexer.Indexer
	publisher  events.Publisher
	mapper     *mapper.ContentRecordMapper
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	indexer *indexer.Indexer,
	publisher events.Publisher,
	logger logger.ILogger,
) IConsumerService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		indexer:    indexer,
		publisher:  publisher,
		mapper:     mapper.NewContentRecordMapper(),
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks. Per-record failures are already counted by the
// indexer and redelivery would only repeat them.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.PublishIngestContentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal ingest message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		return
	}

	result := cs.indexer.IndexBatch(ctx, cs.mapper.ToEntities(payload.Records))

	cs.logger.Info("CONSUMER", "Processed ingest batch", map[string]interface{}{
		"batch_id":  payload.BatchId,
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
	})

	if err := cs.publisher.Publish(ctx, events.NewContentIngestedEvent(result.Succeeded, result.Failed, time.Now())); err != nil {
		cs.logger.Warn("CONSUMER", "Failed to publish event", map[string]interface{}{"error": err})
	}
}
