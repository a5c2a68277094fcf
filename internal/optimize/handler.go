package optimize

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chillyai/enhancer/pkg/handlers"
	"github.com/chillyai/enhancer/pkg/routes"
)

// Handler exposes the service over HTTP.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "optimize"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/optimize",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Optimize},
		},
	}
}

// Optimize accepts {"prompt": "..."} and responds with
// {"optimizedPrompt": "..."}. A body that cannot be decoded is treated the
// same as a missing prompt.
func (h *Handler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, fmt.Errorf("%w: %w", ErrInvalidRequest, err))
		return
	}

	result, err := h.sys.Optimize(r.Context(), req.Prompt)
	if err != nil {
		h.fail(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	handlers.RespondErrorMessage(w, h.logger, MapHTTPStatus(err), err, publicMessage(err))
}
