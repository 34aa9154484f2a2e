// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/interno/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Status  int
	Message string
	Hint    string
}

// Handler serves the standalone error pages.
// No DB needed; it just renders templates.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// NotFound renders the 404 page. It is installed as the router's NotFound
// handler, so it runs for every unmatched path.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Log.Debug("route not found", zap.String("path", r.URL.Path))
	RenderNotFound(w, r)
}
