package events

import (
	"context"
	"time"
)

const (
	TypeChatTurn        = "chat.turn"
	TypeContentIngested = "content.ingested"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the subject suffix, e.g. "chat.turn".
	EventType() string

	Payload() map[string]interface{}

	Timestamp() time.Time
}

// Publisher is satisfied by the NATS publisher and by NopPublisher.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewChatTurnEvent records a completed turn. Message bodies are not included.
func NewChatTurnEvent(sessionId string, contextMatches int, fallback bool, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeChatTurn,
		Data: map[string]interface{}{
			"session_id":      sessionId,
			"context_matches": contextMatches,
			"fallback":        fallback,
		},
		OccurredAt: at,
	}
}

func NewContentIngestedEvent(succeeded, failed int, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeContentIngested,
		Data: map[string]interface{}{
			"succeeded": succeeded,
			"failed":    failed,
		},
		OccurredAt: at,
	}
}

// NopPublisher drops every event. Used when NATS is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}
