package api

import (
	"github.com/JaimeStill/tlpmark/internal/classifications"
	"github.com/JaimeStill/tlpmark/internal/documents"
)

// Domain holds the systems and handlers served by the API.
type Domain struct {
	Documents       documents.System
	Classifications *classifications.Handler
}

func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Documents: documents.New(
			runtime.Database.Connection(),
			runtime.Storage,
			runtime.Logger,
			runtime.Pagination,
		),
		Classifications: classifications.NewHandler(runtime.Logger),
	}
}
