package api

import (
	"github.com/JaimeStill/tlpmark/internal/config"
	"github.com/JaimeStill/tlpmark/internal/infrastructure"
	"github.com/JaimeStill/tlpmark/pkg/pagination"
)

// Runtime is Infrastructure scoped to the API module.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination    pagination.Config
	MaxUploadSize int64
}

// NewRuntime copies infra with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Pagination:     cfg.API.Pagination,
		MaxUploadSize:  cfg.API.MaxUploadSizeBytes(),
	}
}
