package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chillyai/enhancer/pkg/anthropic"
)

// wireRequest is the Messages request body as it reaches the provider.
type wireRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	System    []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func testConfig(t *testing.T) *anthropic.Config {
	t.Helper()
	t.Setenv(anthropic.EnvFallbackAPIKey, "")

	cfg := &anthropic.Config{APIKey: "test-api-key"}
	require.NoError(t, cfg.Finalize(nil))
	return cfg
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *anthropic.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := anthropic.NewClient(testConfig(t), anthropic.WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func TestNewClientMissingKey(t *testing.T) {
	t.Setenv(anthropic.EnvFallbackAPIKey, "")

	cfg := &anthropic.Config{}
	require.NoError(t, cfg.Finalize(nil))

	_, err := anthropic.NewClient(cfg)
	assert.ErrorIs(t, err, anthropic.ErrMissingAPIKey)
}

func TestCreateMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropic.DefaultAPIVersion, r.Header.Get("anthropic-version"))

		var req wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, anthropic.DefaultModel, req.Model)
		assert.Equal(t, anthropic.DefaultMaxTokens, req.MaxTokens)
		require.Len(t, req.System, 1)
		assert.Equal(t, "be brief", req.System[0].Text)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, anthropic.RoleUser, req.Messages[0].Role)
		require.Len(t, req.Messages[0].Content, 1)
		assert.Equal(t, "hello", req.Messages[0].Content[0].Text)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_123",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-20250514",
			"content": [
				{"type": "thinking", "thinking": "hmm", "signature": "sig"},
				{"type": "text", "text": "first"},
				{"type": "text", "text": "second"}
			],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 12, "output_tokens": 3}
		}`))
	})

	resp, err := client.CreateMessage(context.Background(), anthropic.MessageRequest{
		System:   "be brief",
		Messages: []anthropic.Message{{Role: anthropic.RoleUser, Content: "hello"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "msg_123", resp.ID)
	assert.Equal(t, "end_turn", resp.StopReason)
	require.Len(t, resp.Content, 3)
	other, ok := resp.Content[0].(anthropic.OtherBlock)
	require.True(t, ok)
	assert.Equal(t, "thinking", other.BlockType())
	assert.JSONEq(t, `{"type": "thinking", "thinking": "hmm", "signature": "sig"}`, string(other.Raw))

	text, ok := resp.Content.FirstText()
	assert.True(t, ok)
	assert.Equal(t, "first", text)
	assert.Equal(t, 12, resp.Usage.InputTokens)
	assert.Equal(t, 3, resp.Usage.OutputTokens)
}

func TestCreateMessageAssistantTurn(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, anthropic.RoleUser, req.Messages[0].Role)
		assert.Equal(t, anthropic.RoleAssistant, req.Messages[1].Role)
		assert.Empty(t, req.System)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_2","type":"message","role":"assistant","content":[]}`))
	})

	resp, err := client.CreateMessage(context.Background(), anthropic.MessageRequest{
		Model:     "claude-3-5-haiku-latest",
		MaxTokens: 16,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: "hi"},
			{Role: anthropic.RoleAssistant, Content: "hello"},
		},
	})
	require.NoError(t, err)

	_, ok := resp.Content.FirstText()
	assert.False(t, ok)
}

func TestCreateMessageAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	})

	_, err := client.CreateMessage(context.Background(), anthropic.MessageRequest{})

	var apiErr *anthropic.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "rate_limit_error", apiErr.Type)
	assert.Equal(t, "slow down", apiErr.Message)
}

func TestCreateMessageNoRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"busy"}}`))
	})

	_, err := client.CreateMessage(context.Background(), anthropic.MessageRequest{})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCreateMessageUndecodableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.CreateMessage(context.Background(), anthropic.MessageRequest{})
	assert.Error(t, err)
}

func TestCreateMessageCustomHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_3","type":"message","role":"assistant","content":[{"type":"text","text":"ok"}]}`))
	}))
	defer server.Close()

	var seen atomic.Int32
	httpClient := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen.Add(1)
		return http.DefaultTransport.RoundTrip(r)
	})}

	client, err := anthropic.NewClient(testConfig(t),
		anthropic.WithBaseURL(server.URL),
		anthropic.WithHTTPClient(httpClient),
	)
	require.NoError(t, err)

	resp, err := client.CreateMessage(context.Background(), anthropic.MessageRequest{})
	require.NoError(t, err)

	text, _ := resp.Content.FirstText()
	assert.Equal(t, "ok", text)
	assert.Equal(t, int32(1), seen.Load())
}

func TestCreateMessageContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.CreateMessage(ctx, anthropic.MessageRequest{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestModel(t *testing.T) {
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {})
	assert.Equal(t, anthropic.DefaultModel, client.Model())
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
