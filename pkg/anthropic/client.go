// Package anthropic adapts the Anthropic Go SDK to the narrow Messages
// surface the service needs.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Client calls the Messages endpoint. It is safe for concurrent use.
type Client struct {
	sdk       sdk.Client
	model     string
	maxTokens int
}

// Option configures the underlying SDK client.
type Option = option.RequestOption

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(url string) Option {
	return option.WithBaseURL(url)
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return option.WithHTTPClient(client)
}

// NewClient builds a Client from a finalized Config. Options are applied
// after the configured ones. Retries are disabled; the caller owns the
// deadline.
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	base := []Option{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHeader("anthropic-version", cfg.APIVersion),
		option.WithMaxRetries(0),
	}

	return &Client{
		sdk:       sdk.NewClient(append(base, opts...)...),
		model:     cfg.Name,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Model returns the model name used when a request leaves Model empty.
func (c *Client) Model() string {
	return c.model
}

// CreateMessage sends one non-streaming Messages request.
func (c *Client) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	if req.Model == "" {
		req.Model = c.model
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = c.maxTokens
	}

	msg, err := c.sdk.Messages.New(ctx, req.params())
	if err != nil {
		return nil, mapError(err)
	}
	return fromMessage(msg), nil
}

func (r MessageRequest) params() sdk.MessageNewParams {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(r.Model),
		MaxTokens: int64(r.MaxTokens),
		Messages:  make([]sdk.MessageParam, 0, len(r.Messages)),
	}
	if r.System != "" {
		params.System = []sdk.TextBlockParam{{Text: r.System}}
	}

	for _, m := range r.Messages {
		block := sdk.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, sdk.NewAssistantMessage(block))
			continue
		}
		params.Messages = append(params.Messages, sdk.NewUserMessage(block))
	}
	return params
}

func fromMessage(msg *sdk.Message) *MessageResponse {
	resp := &MessageResponse{
		ID:         msg.ID,
		Type:       string(msg.Type),
		Role:       string(msg.Role),
		Model:      string(msg.Model),
		StopReason: string(msg.StopReason),
		Usage: Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
		Content: make(Content, 0, len(msg.Content)),
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			resp.Content = append(resp.Content, TextBlock{Text: block.Text})
			continue
		}
		resp.Content = append(resp.Content, OtherBlock{
			Type: block.Type,
			Raw:  json.RawMessage(block.RawJSON()),
		})
	}
	return resp
}

func mapError(err error) error {
	var sdkErr *sdk.Error
	if !errors.As(err, &sdkErr) {
		return err
	}

	apiErr := &APIError{StatusCode: sdkErr.StatusCode, err: sdkErr}

	var body struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal([]byte(sdkErr.RawJSON()), &body) == nil {
		apiErr.Type = body.Error.Type
		apiErr.Message = body.Error.Message
	}
	return apiErr
}
