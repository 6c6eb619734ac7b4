package bootstrap

import (
	"context"
	"testing"

	"portfolio-chatbot-be/internal/config"
	"portfolio-chatbot-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{IngestTopic: "ingest"},
		Ai: config.AIConfig{
			EmbeddingProvider: "ollama",
			LLMProvider:       "ollama",
			LLMModel:          "llama3",
			CircuitBreaker:    true,
		},
		Session: config.SessionConfig{Backend: "memory"},
		Ingest:  config.IngestConfig{ChunkSize: 10},
	}
}

func TestNewContainerInMemory(t *testing.T) {
	c, err := NewContainer(context.Background(), nil, testConfig(), logger.NewNopLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.ChatbotController)
	assert.NotNil(t, c.AdminController)
	assert.NotNil(t, c.HealthController)
	assert.NotNil(t, c.ConsumerService)
}

func TestNewContainerRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{name: "unknown llm", mutate: func(cfg *config.Config) { cfg.Ai.LLMProvider = "eliza" }},
		{name: "unknown embedder", mutate: func(cfg *config.Config) { cfg.Ai.EmbeddingProvider = "bow" }},
		{name: "postgres sessions without db", mutate: func(cfg *config.Config) { cfg.Session.Backend = "postgres" }},
		{name: "unknown session backend", mutate: func(cfg *config.Config) { cfg.Session.Backend = "etcd" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)

			_, err := NewContainer(context.Background(), nil, cfg, logger.NewNopLogger())
			assert.Error(t, err)
		})
	}
}

type closeTracker struct{ closed int }

func (ct *closeTracker) Close() error {
	ct.closed++
	return nil
}

func TestContainerClosesProvidersOwningConnections(t *testing.T) {
	c := &Container{}
	tracker := &closeTracker{}

	c.addCloser(tracker)
	c.addCloser("not a closer")
	require.Len(t, c.closers, 1)

	c.Close()
	assert.Equal(t, 1, tracker.closed)
}
