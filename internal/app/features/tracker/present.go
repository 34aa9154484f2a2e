// internal/app/features/tracker/present.go
package tracker

import (
	"sort"
	"strconv"
	"time"

	"github.com/dalemusser/interno/internal/app/system/trackerview"
	"github.com/dalemusser/interno/internal/app/system/viewdata"
	"github.com/dalemusser/interno/internal/domain/models"
)

const notePreviewLen = 100

var priorityClasses = map[string]string{
	models.PriorityHigh:   "bg-red-50 text-red-700",
	models.PriorityMedium: "bg-amber-50 text-amber-700",
	models.PriorityLow:    "bg-gray-100 text-gray-600",
}

func priorityClass(p string) string {
	if c, ok := priorityClasses[p]; ok {
		return c
	}
	return priorityClasses[models.PriorityMedium]
}

// formatDateShort renders t as "Jan 2, 2006", or "N/A" for the zero time.
func formatDateShort(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("Jan 2, 2006")
}

// formatDateLong adds the time of day.
func formatDateLong(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("Jan 2, 2006, 3:04 PM")
}

// truncate cuts s to n runes and appends "..." when anything was cut.
func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n]) + "..."
}

func newRow(rec models.HydratedInternship) rowVM {
	actions := make([]quickAction, 0, len(models.QuickStatusActions))
	for _, st := range models.QuickStatusActions {
		actions = append(actions, quickAction{Status: st, Disabled: st == rec.Status})
	}
	return rowVM{
		ID:            rec.ID,
		Name:          rec.Name,
		Initials:      viewdata.Initials(rec.Name),
		IndustryType:  rec.IndustryType,
		Address:       rec.Address,
		RegionName:    rec.RegionName(),
		Status:        rec.Status,
		StatusClass:   models.StatusClass(rec.Status),
		Priority:      rec.Priority,
		PriorityClass: priorityClass(rec.Priority),
		Notes:         rec.Notes,
		NotesPreview:  truncate(rec.Notes, notePreviewLen),
		HasNotes:      rec.Notes != "",
		Contacts:      rec.Contacts,
		ContactCount:  len(rec.Contacts),
		CreatedShort:  formatDateShort(rec.CreatedAt),
		CreatedLong:   formatDateLong(rec.CreatedAt),
		QuickActions:  actions,
	}
}

// buildSections turns the groups into ordered sections. With withEmpty set,
// regions that have no records still get a section so the page can show
// their empty state.
func buildSections(groups trackerview.Groups, regions []models.Region, withEmpty bool) []sectionVM {
	seen := make(map[string]bool, len(groups))
	names := make([]string, 0, len(groups)+len(regions))
	for _, name := range groups.Names() {
		seen[name] = true
		names = append(names, name)
	}
	for _, reg := range regions {
		if withEmpty && !seen[reg.Name] {
			seen[reg.Name] = true
			names = append(names, reg.Name)
		}
	}
	sort.Strings(names)

	out := make([]sectionVM, 0, len(names))
	for i, name := range names {
		items := groups[name]
		rows := make([]rowVM, 0, len(items))
		for _, rec := range items {
			rows = append(rows, newRow(rec))
		}
		out = append(out, sectionVM{
			Name:    name,
			DOMID:   "region-" + strconv.Itoa(i),
			Count:   len(rows),
			Rows:    rows,
			IsEmpty: len(rows) == 0,
		})
	}
	return out
}
