// internal/app/features/regions/new.go
package regions

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/interno/internal/app/store/recordstore"
	"github.com/dalemusser/interno/internal/app/system/apperr"
	"github.com/dalemusser/interno/internal/app/system/formutil"
	"github.com/dalemusser/interno/internal/app/system/limits"
	"github.com/dalemusser/interno/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeNew renders the "New Region" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formData{Action: "/regions"}
	formutil.SetBase(&data.Base, r, "New Region", "/regions")
	templates.Render(w, r, "region_new", data)
}

// HandleCreate processes the New Region form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxSmallFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/regions")
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))

	renderWithError := func(msg string) {
		data := formData{Action: "/regions", Name: name}
		formutil.SetBase(&data.Base, r, "New Region", "/regions")
		data.SetError(msg)
		templates.Render(w, r, "region_new", data)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	reg, err := h.Svc.CreateRegion(ctx, name)
	if err != nil {
		renderWithError(h.saveErrorMessage("create region", err))
		return
	}

	h.Log.Info("region created", zap.String("region_id", reg.ID))
	http.Redirect(w, r, "/regions", http.StatusSeeOther)
}

// saveErrorMessage maps a create or rename failure to form text.
func (h *Handler) saveErrorMessage(op string, err error) string {
	switch {
	case apperr.IsValidation(err):
		return apperr.Message(err)
	case errors.Is(err, recordstore.ErrDuplicateRegion):
		return "A region with that name already exists."
	}
	h.Log.Error(op+" failed", zap.Error(err))
	return "Database error while saving region: " + apperr.Message(err)
}
