package nats

import (
	"testing"
	"time"

	"portfolio-chatbot-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeChatTurn(t *testing.T) {
	at := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	data, err := Encode(events.NewChatTurnEvent("s1", 3, false, at))
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, events.TypeChatTurn, got.EventType())
	assert.True(t, at.Equal(got.Timestamp()))
	assert.Equal(t, "s1", got.Payload()["session_id"])
	// JSON numbers decode as float64
	assert.Equal(t, float64(3), got.Payload()["context_matches"])
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
}
