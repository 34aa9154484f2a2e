// internal/domain/models/options.go
package models

// Application statuses, in pipeline order.
const (
	StatusNotApplied  = "Not Applied"
	StatusEmailed     = "Emailed"
	StatusApplied     = "Applied"
	StatusInterviewed = "Interviewed"
	StatusPassed      = "Passed"
	StatusRejected    = "Rejected"
)

// Priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Defaults applied to new internships.
const (
	DefaultIndustry = "Company"
	DefaultStatus   = StatusNotApplied
	DefaultPriority = PriorityMedium
)

// StatusOptions lists every status in display order.
var StatusOptions = []string{
	StatusNotApplied,
	StatusEmailed,
	StatusApplied,
	StatusInterviewed,
	StatusPassed,
	StatusRejected,
}

// QuickStatusActions are the statuses offered as one-click buttons.
var QuickStatusActions = []string{
	StatusEmailed,
	StatusApplied,
	StatusInterviewed,
	StatusPassed,
	StatusRejected,
}

// PriorityOptions lists every priority, lowest first.
var PriorityOptions = []string{PriorityLow, PriorityMedium, PriorityHigh}

// IndustryTypes lists the selectable industry types.
var IndustryTypes = []string{
	"Company",
	"Technology",
	"Finance",
	"Healthcare",
	"Education",
	"Marketing",
	"Design",
	"Data Science",
	"Engineering",
	"Consulting",
	"Retail",
	"Other",
}

// statusClasses maps each status to its badge CSS classes.
var statusClasses = map[string]string{
	StatusNotApplied:  "bg-gray-100 text-gray-700 border-gray-200",
	StatusEmailed:     "bg-blue-50 text-blue-700 border-blue-200",
	StatusApplied:     "bg-purple-50 text-purple-700 border-purple-200",
	StatusInterviewed: "bg-yellow-50 text-yellow-700 border-yellow-200",
	StatusPassed:      "bg-green-50 text-green-700 border-green-200",
	StatusRejected:    "bg-red-50 text-red-700 border-red-200",
}

// StatusClass returns the badge classes for a status, falling back to the
// "Not Applied" style.
func StatusClass(status string) string {
	if c, ok := statusClasses[status]; ok {
		return c
	}
	return statusClasses[StatusNotApplied]
}

// ValidStatus reports whether s is one of StatusOptions.
func ValidStatus(s string) bool { return contains(StatusOptions, s) }

// ValidPriority reports whether p is one of PriorityOptions.
func ValidPriority(p string) bool { return contains(PriorityOptions, p) }

// ValidIndustry reports whether t is one of IndustryTypes.
func ValidIndustry(t string) bool { return contains(IndustryTypes, t) }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
