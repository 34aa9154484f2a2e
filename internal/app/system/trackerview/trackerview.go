// Package trackerview turns the flat internship list into the filtered,
// grouped and sorted projection the tracker page renders.
//
// Everything here is pure: no I/O, no shared state, inputs are never modified.
package trackerview

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/interno/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Sort keys accepted in the "sort" query parameter.
const (
	SortRecent       = "recent"
	SortName         = "name"
	SortPriorityHigh = "priority-high"
	SortPriorityLow  = "priority-low"
	SortStatus       = "status"
)

// SortOption is a value/label pair for the sort dropdown.
type SortOption struct {
	Value string
	Label string
}

// SortOptions lists the sort keys in dropdown order.
var SortOptions = []SortOption{
	{SortRecent, "Most Recent"},
	{SortName, "Name (A-Z)"},
	{SortPriorityHigh, "Priority (High to Low)"},
	{SortPriorityLow, "Priority (Low to High)"},
	{SortStatus, "Status"},
}

// Selection is the view state carried in the page URL.
type Selection struct {
	Query    string
	Sort     string
	Status   string
	Priority string
}

// ParseSelection reads q, sort, status and priority from a query string.
// Missing values fall back to defaults; unknown sort keys become "recent".
func ParseSelection(v url.Values) Selection {
	sel := Selection{
		Query:    strings.TrimSpace(v.Get("q")),
		Sort:     strings.TrimSpace(v.Get("sort")),
		Status:   strings.TrimSpace(v.Get("status")),
		Priority: strings.TrimSpace(v.Get("priority")),
	}
	if !knownSort(sel.Sort) {
		sel.Sort = SortRecent
	}
	return sel
}

// HasActiveFilters reports whether any filter or search is narrowing the list.
func (s Selection) HasActiveFilters() bool {
	return s.Query != "" || s.Status != "" || s.Priority != ""
}

// Values encodes the selection back into query parameters, omitting defaults.
func (s Selection) Values() url.Values {
	v := url.Values{}
	if s.Query != "" {
		v.Set("q", s.Query)
	}
	if s.Sort != "" && s.Sort != SortRecent {
		v.Set("sort", s.Sort)
	}
	if s.Status != "" {
		v.Set("status", s.Status)
	}
	if s.Priority != "" {
		v.Set("priority", s.Priority)
	}
	return v
}

func knownSort(key string) bool {
	for _, o := range SortOptions {
		if o.Value == key {
			return true
		}
	}
	return false
}

// Groups maps a region name (or models.UnassignedRegion) to its sorted records.
type Groups map[string][]models.HydratedInternship

// Names returns the group keys in lexicographic order.
func (g Groups) Names() []string {
	names := make([]string, 0, len(g))
	for k := range g {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Count returns the total number of records across all groups.
func (g Groups) Count() int {
	n := 0
	for _, items := range g {
		n += len(items)
	}
	return n
}

// Section is one rendered region block.
type Section struct {
	Name  string
	Items []models.HydratedInternship
}

// Sections returns the groups as a slice ordered by name.
func (g Groups) Sections() []Section {
	out := make([]Section, 0, len(g))
	for _, name := range g.Names() {
		out = append(out, Section{Name: name, Items: g[name]})
	}
	return out
}

// Transform filters records by sel, groups them by region name and sorts
// each group by sel.Sort. It returns an empty map when nothing matches.
func Transform(records []models.HydratedInternship, sel Selection) Groups {
	out := Groups{}
	for _, rec := range Filter(records, sel) {
		key := rec.RegionName()
		out[key] = append(out[key], rec)
	}
	for key, items := range out {
		SortRecords(items, sel.Sort)
		out[key] = items
	}
	return out
}

// Group partitions records by region name without filtering, keeping each
// group's input order.
func Group(records []models.HydratedInternship) Groups {
	out := Groups{}
	for _, rec := range records {
		key := rec.RegionName()
		out[key] = append(out[key], rec)
	}
	return out
}

// Filter returns a new slice holding the records that pass the search,
// status and priority filters, in input order.
func Filter(records []models.HydratedInternship, sel Selection) []models.HydratedInternship {
	q := text.Fold(sel.Query)
	out := make([]models.HydratedInternship, 0, len(records))
	for _, rec := range records {
		if q != "" && !matchesQuery(rec, q) {
			continue
		}
		if sel.Status != "" && rec.Status != sel.Status {
			continue
		}
		if sel.Priority != "" && rec.Priority != sel.Priority {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesQuery(rec models.HydratedInternship, foldedQuery string) bool {
	return strings.Contains(text.Fold(rec.Name), foldedQuery) ||
		strings.Contains(text.Fold(rec.IndustryType), foldedQuery) ||
		strings.Contains(text.Fold(rec.Address), foldedQuery)
}

// SortRecords stable-sorts items in place by the given key.
func SortRecords(items []models.HydratedInternship, key string) {
	sort.SliceStable(items, less(items, key))
}

func less(items []models.HydratedInternship, key string) func(i, j int) bool {
	switch key {
	case SortName:
		return func(i, j int) bool {
			return text.Fold(items[i].Name) < text.Fold(items[j].Name)
		}
	case SortPriorityHigh:
		return func(i, j int) bool {
			return highFirst(items[i].Priority) < highFirst(items[j].Priority)
		}
	case SortPriorityLow:
		return func(i, j int) bool {
			return lowFirst(items[i].Priority) < lowFirst(items[j].Priority)
		}
	case SortStatus:
		return func(i, j int) bool {
			return text.Fold(items[i].Status) < text.Fold(items[j].Status)
		}
	default:
		return func(i, j int) bool {
			return createdKey(items[i].CreatedAt).After(createdKey(items[j].CreatedAt))
		}
	}
}

// highFirst ranks High=0, Medium=1, Low=2. Anything else ranks as Medium.
func highFirst(p string) int {
	switch p {
	case models.PriorityHigh:
		return 0
	case models.PriorityLow:
		return 2
	default:
		return 1
	}
}

// lowFirst is the mirror of highFirst.
func lowFirst(p string) int {
	return 2 - highFirst(p)
}

var epoch = time.Unix(0, 0).UTC()

// createdKey maps a missing timestamp to the epoch so it sorts last.
func createdKey(t time.Time) time.Time {
	if t.IsZero() {
		return epoch
	}
	return t
}
