package openai

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

func TestOpenAIProviderChat(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    string
		wantErr error
	}{
		{
			name:  "text reply",
			reply: `{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Five years of Go."},"finish_reason":"stop"}]}`,
			want:  "Five years of Go.",
		},
		{
			name:    "no choices",
			reply:   `{"id":"c2","object":"chat.completion","choices":[]}`,
			wantErr: llm.ErrEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/chat/completions", r.URL.Path)

				var body map[string]interface{}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "gpt-4o-mini", body["model"])
				assert.EqualValues(t, 512, body["max_tokens"])

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.reply))
			}))
			defer srv.Close()

			p := NewOpenAIProvider("sk", srv.URL, "gpt-4o-mini")
			out, err := p.Chat(context.Background(), []llm.Message{
				{Role: llm.RoleSystem, Content: "persona"},
				{Role: llm.RoleUser, Content: "experience?"},
			}, llm.WithMaxTokens(512))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}
