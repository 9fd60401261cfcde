package api

import (
	"net/http"

	"github.com/JaimeStill/tlpmark/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	routes.Register(
		mux,
		domain.Classifications.Routes(),
		domain.Documents.Handler(runtime.MaxUploadSize).Routes(),
	)
}
