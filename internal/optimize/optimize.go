// Package optimize rewrites a user's prompt into a clearer version by asking
// a language model, falling back to the original text when the model
// returns nothing usable.
package optimize

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/chillyai/enhancer/pkg/anthropic"
)

// Model is the provider surface the service depends on. *anthropic.Client
// satisfies it.
type Model interface {
	CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error)
}

// Request is the body of an optimization call.
type Request struct {
	Prompt string `json:"prompt"`
}

// Result carries the rewritten prompt. Passthrough is set when the model
// produced no text and OptimizedPrompt is the unchanged input.
type Result struct {
	OptimizedPrompt string `json:"optimizedPrompt"`
	Passthrough     bool   `json:"-"`
}

// System defines the optimization contract.
type System interface {
	Handler() *Handler
	Optimize(ctx context.Context, input string) (Result, error)
}

type service struct {
	model     Model
	modelName string
	maxTokens int
	timeout   time.Duration
	slots     *semaphore.Weighted
	logger    *slog.Logger
}

// New creates the optimization service. The model name, token limit, call
// timeout and concurrency cap come from cfg, which must be finalized.
func New(model Model, cfg *anthropic.Config, logger *slog.Logger) System {
	return &service{
		model:     model,
		modelName: cfg.Name,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.TimeoutDuration(),
		slots:     semaphore.NewWeighted(int64(cfg.MaxConcurrency)),
		logger:    logger.With("system", "optimize"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// Optimize makes exactly one model call for non-empty input. Whitespace is
// not trimmed; only the empty string is rejected.
func (s *service) Optimize(ctx context.Context, input string) (Result, error) {
	if input == "" {
		return Result{}, ErrInvalidRequest
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.slots.Acquire(ctx, 1); err != nil {
		s.logger.Error("no model slot available", "error", err)
		return Result{}, fmt.Errorf("%w: %w", ErrOptimizationFailed, err)
	}
	defer s.slots.Release(1)

	start := time.Now()
	resp, err := s.model.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     s.modelName,
		MaxTokens: s.maxTokens,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: BuildPrompt(input)},
		},
	})
	if err != nil {
		s.logger.Error("model call failed",
			"model", s.modelName,
			"duration", time.Since(start),
			"error", err,
		)
		return Result{}, fmt.Errorf("%w: %w", ErrOptimizationFailed, err)
	}

	var content anthropic.Content
	if resp != nil {
		content = resp.Content
	}

	text, ok := content.FirstText()
	if !ok {
		s.logger.Warn("model returned no text, passing input through",
			"model", s.modelName,
			"blocks", len(content),
		)
		return Result{OptimizedPrompt: input, Passthrough: true}, nil
	}

	s.logger.Info("prompt optimized",
		"model", s.modelName,
		"input_chars", len(input),
		"output_chars", len(text),
		"duration", time.Since(start),
	)
	return Result{OptimizedPrompt: text}, nil
}
