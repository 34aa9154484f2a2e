// internal/app/features/tracker/routes.go
package tracker

import (
	"github.com/dalemusser/interno/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the tracker page and the internship routes. Bootstrap
// mounts it at "/".
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// LIST (grouped by region, filtered by the query string)
		pr.Get("/", h.ServeList)

		// CREATE
		pr.Get("/internships/new", h.ServeNew)
		pr.Post("/internships", h.HandleCreate)

		// EDIT
		pr.Get("/internships/{id}/edit", h.ServeEdit)
		pr.Post("/internships/{id}/edit", h.HandleEdit)

		// ROW ACTIONS
		pr.Post("/internships/{id}/delete", h.HandleDelete)
		pr.Post("/internships/{id}/status", h.HandleStatus)
		pr.Post("/internships/{id}/priority", h.HandlePriority)
		pr.Post("/internships/{id}/notes", h.HandleNotes)

		// MODALS (HTMX)
		pr.Get("/internships/{id}/contacts_modal", h.ServeContactsModal)
		pr.Get("/internships/{id}/notes_modal", h.ServeNotesModal)
	})

	return r
}
