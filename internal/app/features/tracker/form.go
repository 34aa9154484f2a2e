// internal/app/features/tracker/form.go
package tracker

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/interno/internal/app/system/apperr"
	"github.com/dalemusser/interno/internal/app/system/formutil"
	"github.com/dalemusser/interno/internal/app/system/limits"
	"github.com/dalemusser/interno/internal/app/system/timeouts"
	trackersvc "github.com/dalemusser/interno/internal/app/system/tracker"
	"github.com/dalemusser/interno/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Form actions besides a plain save.
const (
	actionAddContact   = "add_contact"
	actionRemovePrefix = "remove_contact_"
	minContactSlots    = 1
)

// internshipForm is what the new and edit forms submit.
type internshipForm struct {
	Name         string
	IndustryType string
	Address      string
	RegionID     string
	Status       string
	Priority     string
	Notes        string
	Contacts     []models.Contact
}

// readForm pulls the internship fields out of a parsed form. Contact fields
// are repeated inputs; blank slots are kept here so the form can echo them.
func readForm(r *http.Request) internshipForm {
	f := internshipForm{
		Name:         strings.TrimSpace(r.FormValue("name")),
		IndustryType: strings.TrimSpace(r.FormValue("industry_type")),
		Address:      strings.TrimSpace(r.FormValue("address")),
		RegionID:     strings.TrimSpace(r.FormValue("region_id")),
		Status:       strings.TrimSpace(r.FormValue("status")),
		Priority:     strings.TrimSpace(r.FormValue("priority")),
		Notes:        strings.TrimSpace(r.FormValue("notes")),
	}

	names := r.Form["contact_name"]
	positions := r.Form["contact_position"]
	emails := r.Form["contact_email"]
	n := max(len(names), len(positions), len(emails))
	for i := 0; i < n; i++ {
		f.Contacts = append(f.Contacts, models.Contact{
			Name:     strings.TrimSpace(at(names, i)),
			Position: strings.TrimSpace(at(positions, i)),
			Email:    strings.TrimSpace(at(emails, i)),
		})
	}
	return f
}

func at(vals []string, i int) string {
	if i < len(vals) {
		return vals[i]
	}
	return ""
}

// applySlotAction handles the add/remove contact buttons. It reports false
// when action is a plain save.
func applySlotAction(action string, contacts []models.Contact) ([]models.Contact, bool) {
	switch {
	case action == actionAddContact:
		return append(append([]models.Contact(nil), contacts...), models.Contact{}), true
	case strings.HasPrefix(action, actionRemovePrefix):
		idx, err := strconv.Atoi(strings.TrimPrefix(action, actionRemovePrefix))
		out := append([]models.Contact(nil), contacts...)
		if err == nil && idx >= 0 && idx < len(out) && len(out) > minContactSlots {
			out = append(out[:idx], out[idx+1:]...)
		}
		return out, true
	}
	return contacts, false
}

func contactSlots(contacts []models.Contact) []contactSlot {
	if len(contacts) == 0 {
		contacts = []models.Contact{{}}
	}
	out := make([]contactSlot, 0, len(contacts))
	for i, c := range contacts {
		out = append(out, contactSlot{Index: i, Name: c.Name, Position: c.Position, Email: c.Email})
	}
	return out
}

// newFormData fills the option lists and the echoed values.
func (h *Handler) newFormData(ctx context.Context, r *http.Request, title string, f internshipForm) formData {
	regions, err := h.Svc.ListRegions(ctx)
	if err != nil {
		// The form still works without the region dropdown.
		h.Log.Warn("list regions for form failed", zap.Error(err))
	}
	slots := contactSlots(f.Contacts)
	data := formData{
		Name:            f.Name,
		IndustryType:    f.IndustryType,
		Address:         f.Address,
		RegionID:        f.RegionID,
		Status:          f.Status,
		Priority:        f.Priority,
		Notes:           f.Notes,
		Contacts:        slots,
		CanRemove:       len(slots) > minContactSlots,
		Regions:         regions,
		IndustryTypes:   models.IndustryTypes,
		StatusOptions:   models.StatusOptions,
		PriorityOptions: models.PriorityOptions,
		ReturnURL:       returnURL(r),
	}
	formutil.SetBase(&data.Base, r, title, "/")
	return data
}

// returnURL is the page to go back to after the form: the "return" field on
// POST, the "return" query parameter on GET, "/" otherwise.
func returnURL(r *http.Request) string {
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}
	return urlutil.SafeReturn(ret, "", "/")
}

/*─────────────────────────────────────────────────────────────────────────────*
| New / Create                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeNew renders the "Add Internship" form with defaults selected.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	data := h.newFormData(ctx, r, "Add Internship", internshipForm{
		IndustryType: models.DefaultIndustry,
		Status:       models.DefaultStatus,
		Priority:     models.DefaultPriority,
	})
	data.Action = "/internships"
	templates.Render(w, r, "internship_new", data)
}

// HandleCreate processes the "Add Internship" form. The add/remove contact
// buttons re-render the form; a save creates the record and redirects back
// to the list.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxInternshipFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f := readForm(r)

	render := func(msg string) {
		data := h.newFormData(ctx, r, "Add Internship", f)
		data.Action = "/internships"
		if msg != "" {
			data.SetError(msg)
		}
		templates.Render(w, r, "internship_new", data)
	}

	if contacts, ok := applySlotAction(r.FormValue("action"), f.Contacts); ok {
		f.Contacts = contacts
		render("")
		return
	}

	rec, err := h.Svc.CreateInternship(ctx, trackersvc.InternshipInput{
		Name:         f.Name,
		IndustryType: f.IndustryType,
		Address:      f.Address,
		RegionID:     f.RegionID,
		Status:       f.Status,
		Priority:     f.Priority,
		Notes:        f.Notes,
		Contacts:     f.Contacts,
	})
	if err != nil {
		if !apperr.IsValidation(err) {
			h.Log.Error("create internship failed", zap.Error(err))
		}
		render(apperr.Message(err))
		return
	}

	h.Log.Info("internship created", zap.String("internship_id", rec.ID))
	http.Redirect(w, r, returnURL(r), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Edit                                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeEdit renders the edit form populated from the stored record.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, err := h.Svc.GetInternship(ctx, id)
	if err != nil {
		h.lookupFailed(w, r, err)
		return
	}

	data := h.newFormData(ctx, r, "Edit Internship", internshipForm{
		Name:         rec.Name,
		IndustryType: rec.IndustryType,
		Address:      rec.Address,
		RegionID:     rec.RegionID(),
		Status:       rec.Status,
		Priority:     rec.Priority,
		Notes:        rec.Notes,
		Contacts:     rec.Contacts,
	})
	data.ID = rec.ID
	data.IsEdit = true
	data.Action = "/internships/" + rec.ID + "/edit"
	templates.Render(w, r, "internship_edit", data)
}

// HandleEdit saves every field of the edit form as one patch.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxInternshipFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f := readForm(r)

	render := func(msg string) {
		data := h.newFormData(ctx, r, "Edit Internship", f)
		data.ID = id
		data.IsEdit = true
		data.Action = "/internships/" + id + "/edit"
		if msg != "" {
			data.SetError(msg)
		}
		templates.Render(w, r, "internship_edit", data)
	}

	if contacts, ok := applySlotAction(r.FormValue("action"), f.Contacts); ok {
		f.Contacts = contacts
		render("")
		return
	}

	patch := models.InternshipPatch{
		Name:         &f.Name,
		IndustryType: &f.IndustryType,
		Address:      &f.Address,
		RegionID:     &f.RegionID,
		Status:       &f.Status,
		Priority:     &f.Priority,
		Notes:        &f.Notes,
		Contacts:     &f.Contacts,
	}
	if _, err := h.Svc.UpdateInternship(ctx, id, patch); err != nil {
		if apperr.IsNotFound(err) {
			h.ErrLog.LogNotFound(w, r, "update internship: not found", err, "That internship no longer exists.", "/")
			return
		}
		if !apperr.IsValidation(err) {
			h.Log.Error("update internship failed", zap.String("internship_id", id), zap.Error(err))
		}
		render(apperr.Message(err))
		return
	}

	h.Log.Info("internship updated", zap.String("internship_id", id))
	http.Redirect(w, r, returnURL(r), http.StatusSeeOther)
}

// lookupFailed renders the page for a failed GetInternship.
func (h *Handler) lookupFailed(w http.ResponseWriter, r *http.Request, err error) {
	if apperr.IsNotFound(err) {
		h.ErrLog.LogNotFound(w, r, "internship not found", err, "That internship no longer exists.", "/")
		return
	}
	h.ErrLog.LogServerError(w, r, "get internship failed", err, apperr.Message(err), "/")
}
