package main

import (
	"net/http"

	"github.com/JaimeStill/tlpmark/internal/api"
	"github.com/JaimeStill/tlpmark/internal/config"
	"github.com/JaimeStill/tlpmark/internal/infrastructure"
	"github.com/JaimeStill/tlpmark/pkg/handlers"
	"github.com/JaimeStill/tlpmark/pkg/module"
)

type status struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func buildRouter(cfg *config.Config, infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()
	router.Mount(api.NewModule(cfg, infra))

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, status{Status: "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := infra.Lifecycle.Ready(); err != nil {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, status{Status: "not ready", Reason: err.Error()})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, status{Status: "ready"})
	})

	return router
}
