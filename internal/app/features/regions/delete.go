// internal/app/features/regions/delete.go
package regions

import (
	"context"
	"net/http"

	"github.com/dalemusser/interno/internal/app/system/apperr"
	"github.com/dalemusser/interno/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDelete deletes a region and redirects back to the list. Internships
// that were in it become unassigned.
//
// Route: POST /regions/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Svc.DeleteRegion(ctx, id); err != nil {
		if apperr.IsNotFound(err) {
			h.ErrLog.LogNotFound(w, r, "delete region: not found", err, "That region no longer exists.", "/regions")
			return
		}
		h.ErrLog.LogServerError(w, r, "delete region failed", err, "Unable to delete region: "+apperr.Message(err), "/regions")
		return
	}

	h.Log.Info("region deleted", zap.String("region_id", id))
	http.Redirect(w, r, "/regions", http.StatusSeeOther)
}
