package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/internal/llm"
)

const messageReply = `{
  "id": "msg_1",
  "type": "message",
  "role": "assistant",
  "model": "claude-test",
  "content": [
    {"type": "text", "text": "[{\"url\":"},
    {"type": "text", "text": "\"https://acme.com\"}]"}
  ],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 1, "output_tokens": 1}
}`

func TestComplete_NotConfigured(t *testing.T) {
	t.Parallel()

	c := llm.NewClient(llm.Config{Model: "claude-test"}, logger.NewNop())

	_, err := c.Complete(context.Background(), "system", "prompt")
	require.ErrorIs(t, err, llm.ErrNotConfigured)
	assert.False(t, c.Configured())
}

func TestComplete_SendsMessageAndJoinsText(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(messageReply))
	}))
	t.Cleanup(srv.Close)

	c := llm.NewClient(llm.Config{
		APIKey:  "test-key",
		Model:   "claude-test",
		BaseURL: srv.URL + "/",
	}, logger.NewNop())

	reply, err := c.Complete(context.Background(), "be terse", "pick links")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"url":"https://acme.com"}]`, reply)

	assert.Equal(t, "claude-test", got["model"])
	assert.InDelta(t, 800, got["max_tokens"], 0)
	assert.InDelta(t, 0.3, got["temperature"], 1e-9)

	system, ok := got["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	assert.Equal(t, "be terse", system[0].(map[string]any)["text"])
}

func TestComplete_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad model"}}`))
	}))
	t.Cleanup(srv.Close)

	c := llm.NewClient(llm.Config{APIKey: "k", Model: "nope", BaseURL: srv.URL + "/"}, logger.NewNop())

	_, err := c.Complete(context.Background(), "s", "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic messages")
}
