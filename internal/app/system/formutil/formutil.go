// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - An error message explaining what went wrong
// - All the context data needed for the form (dropdowns, etc.)
//
// Example usage:
//
//	type regionFormData struct {
//		formutil.Base
//		Name string
//	}
//
//	data := regionFormData{Name: name}
//	formutil.SetBase(&data.Base, r, "New Region", "/regions")
//	data.SetError("Region name is required.")
//	templates.Render(w, r, "region_new", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/interno/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// SetBase populates the common Base fields from the request.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, title, backDefault)
}

// SetError sets the error message. msg is escaped.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// HasError reports whether an error message is set.
func (b *Base) HasError() bool { return b.Error != "" }
