// Package infrastructure assembles the dependencies every domain system
// needs: lifecycle coordination, logging, the database and the model client.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chillyai/enhancer/internal/config"
	"github.com/chillyai/enhancer/pkg/anthropic"
	"github.com/chillyai/enhancer/pkg/database"
	"github.com/chillyai/enhancer/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Model     *anthropic.Client
}

// New creates an Infrastructure from the application configuration.
// Nothing connects yet; call Start to register lifecycle hooks.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// NewWithLogger is New with a caller-supplied root logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	lc := lifecycle.New()

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	model, err := anthropic.NewClient(&cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("model client init failed: %w", err)
	}

	logger.Info("model client configured", "model", model.Model(), "base_url", cfg.Model.BaseURL)

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Model:     model,
	}, nil
}

// Start registers the database startup and shutdown hooks.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
