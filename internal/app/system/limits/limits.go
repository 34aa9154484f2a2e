// internal/app/system/limits/limits.go
package limits

// Request body size limits for form submissions.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxInternshipFormSize covers the add/edit form, including every
	// contact slot and the notes field.
	MaxInternshipFormSize = 256 << 10 // 256 KB

	// MaxNotesFormSize is the limit for the inline notes editor.
	MaxNotesFormSize = 128 << 10 // 128 KB

	// MaxSmallFormSize is for single-field forms: region name, status and
	// priority actions, sign-in.
	MaxSmallFormSize = 8 << 10 // 8 KB
)
