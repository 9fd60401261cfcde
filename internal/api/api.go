// Package api assembles the API module: domain systems, routes, and middleware.
package api

import (
	"net/http"

	"github.com/JaimeStill/tlpmark/internal/config"
	"github.com/JaimeStill/tlpmark/internal/infrastructure"
	"github.com/JaimeStill/tlpmark/pkg/middleware"
	"github.com/JaimeStill/tlpmark/pkg/module"
)

// NewModule mounts every domain handler under cfg.API.BasePath. Requests are
// logged first and, when a verifier is configured, authenticated second.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) *module.Module {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Logger(runtime.Logger))
	if runtime.Verifier != nil {
		m.Use(middleware.Auth(runtime.Verifier, runtime.Logger))
	}
	return m
}
