// internal/app/features/regions/routes.go
package regions

import (
	"github.com/dalemusser/interno/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Region routes under the base path
// (typically "/regions" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// LIST
		pr.Get("/", h.ServeList)

		// CREATE
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)

		// EDIT
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)

		// DELETE
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
