// internal/app/features/tracker/actions.go
package tracker

import (
	"context"
	"net/http"

	"github.com/dalemusser/interno/internal/app/system/apperr"
	"github.com/dalemusser/interno/internal/app/system/limits"
	"github.com/dalemusser/interno/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDelete deletes an internship and redirects back to the list.
//
// Route: POST /internships/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxSmallFormSize)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Svc.DeleteInternship(ctx, id); err != nil {
		h.actionFailed(w, r, "delete internship", "Unable to delete internship", err)
		return
	}
	h.Log.Info("internship deleted", zap.String("internship_id", id))
	http.Redirect(w, r, returnURL(r), http.StatusSeeOther)
}

// HandleStatus applies a quick status action.
//
// Route: POST /internships/{id}/status (form: status)
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxSmallFormSize)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Svc.UpdateStatus(ctx, id, r.FormValue("status")); err != nil {
		h.actionFailed(w, r, "update status", "Unable to update status", err)
		return
	}
	http.Redirect(w, r, returnURL(r), http.StatusSeeOther)
}

// HandlePriority sets the priority from the row menu.
//
// Route: POST /internships/{id}/priority (form: priority)
func (h *Handler) HandlePriority(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxSmallFormSize)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Svc.UpdatePriority(ctx, id, r.FormValue("priority")); err != nil {
		h.actionFailed(w, r, "update priority", "Unable to update priority", err)
		return
	}
	http.Redirect(w, r, returnURL(r), http.StatusSeeOther)
}

// HandleNotes saves the notes editor. Blank notes clear the field.
//
// Route: POST /internships/{id}/notes (form: notes)
func (h *Handler) HandleNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxNotesFormSize)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Svc.UpdateNotes(ctx, id, r.FormValue("notes")); err != nil {
		h.actionFailed(w, r, "update notes", "Unable to save notes", err)
		return
	}
	http.Redirect(w, r, returnURL(r), http.StatusSeeOther)
}

// actionFailed renders the error page for a row action. The stored row is
// unchanged, so the back link returns to an accurate list.
func (h *Handler) actionFailed(w http.ResponseWriter, r *http.Request, op, prefix string, err error) {
	back := returnURL(r)
	msg := prefix + ": " + apperr.Message(err)
	switch {
	case apperr.IsValidation(err):
		h.ErrLog.LogBadRequest(w, r, op+" rejected", err, msg, back)
	case apperr.IsNotFound(err):
		h.ErrLog.LogNotFound(w, r, op+": not found", err, prefix+": that internship no longer exists.", back)
	default:
		h.ErrLog.LogServerError(w, r, op+" failed", err, msg, back)
	}
}
