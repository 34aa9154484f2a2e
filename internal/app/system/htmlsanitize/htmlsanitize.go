// Package htmlsanitize turns stored plain text into HTML for display.
//
// Free-text fields (notes, addresses, contact details) are stored exactly as
// entered. Templates escape them on output; PlainTextToHTML is for the few
// places that need line breaks kept, where the result is inserted as raw HTML.
package htmlsanitize

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	breaksOnce sync.Once
	breaks     *bluemonday.Policy
)

// breaksPolicy allows <br> and nothing else.
func breaksPolicy() *bluemonday.Policy {
	breaksOnce.Do(func() {
		breaks = bluemonday.NewPolicy()
		breaks.AllowElements("br")
	})
	return breaks
}

// PlainTextToHTML escapes s and converts newlines to <br>. The result is
// passed through a policy that admits only <br>, so it is safe to emit
// unescaped.
func PlainTextToHTML(s string) template.HTML {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML(breaksPolicy().Sanitize(escaped))
}
