package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-chatbot-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProviderChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var body chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama3", body.Model)
		assert.False(t, body.Stream)
		assert.Equal(t, 512, body.Options.NumPredict)
		assert.InDelta(t, 0.2, body.Options.Temperature, 1e-9)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, llm.RoleSystem, body.Messages[0].Role)

		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"Go and Rust."},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "llama3")
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "persona"},
		{Role: llm.RoleUser, Content: "languages?"},
	}, llm.WithMaxTokens(512), llm.WithTemperature(0.2))

	require.NoError(t, err)
	assert.Equal(t, "Go and Rust.", out)
}

func TestOllamaProviderChatFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, payload: `oops`},
		{name: "error field", status: http.StatusOK, payload: `{"error":"model not found"}`},
		{name: "empty content", status: http.StatusOK, payload: `{"message":{"role":"assistant","content":""}}`, wantErr: llm.ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			_, err := NewOllamaProvider(srv.URL, "m").Generate(context.Background(), "hi")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
