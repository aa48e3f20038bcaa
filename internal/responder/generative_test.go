package responder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dom/taskchat-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Path          string
	Authorization string
	Body          map[string]any
}

func newCompletionServer(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Path = r.URL.Path
		captured.Authorization = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&captured.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, captured
}

func TestGenerativeResponder_Success(t *testing.T) {
	srv, captured := newCompletionServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "gemini-2.5-flash",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "Happy to help!"}, "finish_reason": "stop"}]
	}`)

	r := NewGenerativeResponder(GenerativeConfig{
		APIKey:      "test-key",
		BaseURL:     srv.URL + "/",
		Model:       "gemini-2.5-flash",
		MaxTokens:   500,
		Temperature: 0.7,
	})

	reply := r.Respond(context.Background(), "plan my day")

	assert.Equal(t, "Happy to help!", reply)
	assert.Equal(t, "/chat/completions", captured.Path)
	assert.Equal(t, "Bearer test-key", captured.Authorization)
	assert.Equal(t, "gemini-2.5-flash", captured.Body["model"])
	assert.EqualValues(t, 500, captured.Body["max_tokens"])

	messages, ok := captured.Body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	first := messages[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, Prompt("plan my day"), first["content"])
}

func TestGenerativeResponder_MissingKey(t *testing.T) {
	r := NewGenerativeResponder(GenerativeConfig{Model: "gemini-2.5-flash"})

	assert.Equal(t, "AI service not available (missing API key).", r.Respond(context.Background(), "hi"))
}

func TestGenerativeResponder_ProviderError(t *testing.T) {
	srv, _ := newCompletionServer(t, http.StatusInternalServerError,
		`{"error": {"message": "quota exhausted", "type": "server_error"}}`)

	r := NewGenerativeResponder(GenerativeConfig{APIKey: "k", BaseURL: srv.URL, Model: "m"})

	reply := r.Respond(context.Background(), "hi")

	assert.Contains(t, reply, "Sorry, I encountered an error: ")
	assert.Contains(t, reply, "quota exhausted")
}

func TestGenerativeResponder_NoChoices(t *testing.T) {
	srv, _ := newCompletionServer(t, http.StatusOK, `{"id": "x", "object": "chat.completion", "choices": []}`)

	r := NewGenerativeResponder(GenerativeConfig{APIKey: "k", BaseURL: srv.URL, Model: "m"})

	assert.Equal(t, "Sorry, I encountered an error: model returned no choices", r.Respond(context.Background(), "hi"))
}

func TestGenerativeResponder_CancelledContext(t *testing.T) {
	srv, _ := newCompletionServer(t, http.StatusOK, `{"choices": []}`)
	r := NewGenerativeResponder(GenerativeConfig{APIKey: "k", BaseURL: srv.URL, Model: "m"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Contains(t, r.Respond(ctx, "hi"), "Sorry, I encountered an error: ")
}

func TestNew(t *testing.T) {
	cfg := &config.Config{Responder: config.ResponderRules}
	assert.IsType(t, &RuleResponder{}, New(cfg))

	cfg.Responder = config.ResponderGenerative
	assert.IsType(t, &GenerativeResponder{}, New(cfg))
}
