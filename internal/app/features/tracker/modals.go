// internal/app/features/tracker/modals.go
package tracker

import (
	"context"
	"net/http"

	"github.com/dalemusser/interno/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeContactsModal renders the contacts list for one internship as an
// HTMX snippet swapped into #modal-root.
func (h *Handler) ServeContactsModal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, err := h.Svc.GetInternship(ctx, id)
	if err != nil {
		h.lookupFailed(w, r, err)
		return
	}

	templates.RenderSnippet(w, "contacts_modal", contactsModalData{
		ID:       rec.ID,
		Name:     rec.Name,
		Contacts: rec.Contacts,
	})
}

// ServeNotesModal renders the notes editor for one internship.
func (h *Handler) ServeNotesModal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, err := h.Svc.GetInternship(ctx, id)
	if err != nil {
		h.lookupFailed(w, r, err)
		return
	}

	templates.RenderSnippet(w, "notes_modal", notesModalData{
		ID:        rec.ID,
		Name:      rec.Name,
		Notes:     rec.Notes,
		ReturnURL: returnURL(r),
	})
}
