// Package infrastructure assembles the systems every domain depends on:
// lifecycle coordination, logging, the document catalog database, blob
// storage, and the optional bearer token verifier.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/tlpmark/internal/config"
	"github.com/JaimeStill/tlpmark/pkg/database"
	"github.com/JaimeStill/tlpmark/pkg/lifecycle"
	"github.com/JaimeStill/tlpmark/pkg/middleware"
	"github.com/JaimeStill/tlpmark/pkg/storage"
)

// Infrastructure holds the shared systems. Verifier is nil when auth is disabled.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Verifier  middleware.TokenVerifier
}

// New builds every system without starting it. Provider discovery for the
// verifier is the one network call made here.
func New(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	logger := cfg.Log.NewLogger(os.Stderr)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	var verifier middleware.TokenVerifier
	if cfg.Auth.Enabled {
		verifier, err = middleware.NewOIDCVerifier(ctx, &cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("auth init failed: %w", err)
		}
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Verifier:  verifier,
	}, nil
}

// Start registers database and storage hooks with the coordinator and
// gates readiness on the database.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	i.Lifecycle.AddCheck("database", i.Database.Ready)
	return nil
}
