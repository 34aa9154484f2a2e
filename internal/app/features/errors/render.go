// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/interno/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// backendHint is shown under list and analytics load failures.
const backendHint = "Check that the record store is running and that the app's database settings are correct."

// RenderError writes status and renders the shared error page.
// If backURL is empty, a safe back URL is resolved with "/" as fallback.
func RenderError(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	renderPage(w, r, status, title, msg, "", backURL)
}

// RenderNotFound shows the "page not found" page with a link home.
func RenderNotFound(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusNotFound, "Page not found",
		"The page you are looking for does not exist.", "", "/")
}

// RenderLoadError shows a full-panel failure for a page whose data could not
// be loaded. The raw error text is shown alongside a configuration hint.
func RenderLoadError(w http.ResponseWriter, r *http.Request, title string, err error) {
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	renderPage(w, r, http.StatusInternalServerError, title, msg, backendHint, "/")
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, title, msg, hint, backURL string) {
	vm := viewdata.NewBaseVM(r, title, "/")
	if backURL != "" {
		vm.BackURL = backURL
	}
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  vm,
		Status:  status,
		Message: msg,
		Hint:    hint,
	})
}
