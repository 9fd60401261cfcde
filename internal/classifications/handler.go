package classifications

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/tlpmark/pkg/handlers"
	"github.com/JaimeStill/tlpmark/pkg/routes"
	"github.com/JaimeStill/tlpmark/pkg/tlp"
)

// Level describes one selectable classification for API clients.
type Level struct {
	Name string `json:"name"`
	tlp.Record
}

// Handler provides HTTP endpoints describing the classification levels.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a Handler with the given logger.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger.With("handler", "classifications"),
	}
}

// Routes returns the route group definition for classification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/classifications",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{level}", Handler: h.Find},
		},
	}
}

// List returns every selectable level, lowest sensitivity first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	levels := make([]Level, 0, len(tlp.Levels()))
	for _, c := range tlp.Levels() {
		record, _ := tlp.RecordFor(c)
		levels = append(levels, Level{Name: c.String(), Record: record})
	}

	handlers.RespondJSON(w, http.StatusOK, levels)
}

// Find returns a single level identified by name or token.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	c, err := tlp.Parse(r.PathValue("level"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	record, err := tlp.RecordFor(c)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Level{Name: c.String(), Record: record})
}
