// internal/app/features/changes/routes.go
package changes

import (
	"github.com/dalemusser/interno/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the event stream (typically at "/changes").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeStream)
	})
	return r
}
