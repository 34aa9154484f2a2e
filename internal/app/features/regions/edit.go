// internal/app/features/regions/edit.go
package regions

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/interno/internal/app/system/apperr"
	"github.com/dalemusser/interno/internal/app/system/formutil"
	"github.com/dalemusser/interno/internal/app/system/limits"
	"github.com/dalemusser/interno/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeEdit renders the rename form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	reg, err := h.Svc.GetRegion(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			h.ErrLog.LogNotFound(w, r, "region not found", err, "That region no longer exists.", "/regions")
			return
		}
		h.ErrLog.LogServerError(w, r, "load region failed", err, "Unable to load region.", "/regions")
		return
	}

	data := formData{ID: reg.ID, IsEdit: true, Action: "/regions/" + reg.ID + "/edit", Name: reg.Name}
	formutil.SetBase(&data.Base, r, "Edit Region", "/regions")
	templates.Render(w, r, "region_edit", data)
}

// HandleEdit renames a region.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxSmallFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/regions")
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))

	renderWithError := func(msg string) {
		data := formData{ID: id, IsEdit: true, Action: "/regions/" + id + "/edit", Name: name}
		formutil.SetBase(&data.Base, r, "Edit Region", "/regions")
		data.SetError(msg)
		templates.Render(w, r, "region_edit", data)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Svc.UpdateRegion(ctx, id, name); err != nil {
		if apperr.IsNotFound(err) {
			h.ErrLog.LogNotFound(w, r, "rename region: not found", err, "That region no longer exists.", "/regions")
			return
		}
		renderWithError(h.saveErrorMessage("rename region", err))
		return
	}

	h.Log.Info("region renamed", zap.String("region_id", id))
	http.Redirect(w, r, "/regions", http.StatusSeeOther)
}
