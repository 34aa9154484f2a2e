package tracker

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/interno/internal/app/system/trackerview"
	"github.com/dalemusser/interno/internal/domain/models"
)

// RecentNotesLimit is how many noted records the analytics page lists.
const RecentNotesLimit = 5

// Count is one bar in a breakdown.
type Count struct {
	Label string
	Count int
}

// RecentNote is a record with non-blank notes, annotated with its region.
type RecentNote struct {
	ID         string
	Name       string
	Notes      string
	RegionName string
	CreatedAt  time.Time
}

// Analytics is the derived summary shown on the analytics page.
type Analytics struct {
	Total       int
	ByRegion    []Count
	ByStatus    []Count
	ByIndustry  []Count
	RecentNotes []RecentNote
}

// Analytics loads every record once and derives the summary from it.
func (s *Service) Analytics(ctx context.Context) (Analytics, error) {
	recs, err := s.ListInternships(ctx)
	if err != nil {
		return Analytics{}, err
	}
	return Summarize(recs), nil
}

// Summarize computes the analytics over recs without touching the store.
func Summarize(recs []models.HydratedInternship) Analytics {
	byRegion := map[string]int{}
	byStatus := map[string]int{}
	byIndustry := map[string]int{}
	for _, r := range recs {
		byRegion[r.RegionName()]++
		byStatus[r.Status]++
		byIndustry[r.IndustryType]++
	}

	noted := make([]models.HydratedInternship, 0, len(recs))
	for _, r := range recs {
		if strings.TrimSpace(r.Notes) != "" {
			noted = append(noted, r)
		}
	}
	trackerview.SortRecords(noted, trackerview.SortRecent)
	if len(noted) > RecentNotesLimit {
		noted = noted[:RecentNotesLimit]
	}
	notes := make([]RecentNote, 0, len(noted))
	for _, r := range noted {
		notes = append(notes, RecentNote{
			ID:         r.ID,
			Name:       r.Name,
			Notes:      r.Notes,
			RegionName: r.RegionName(),
			CreatedAt:  r.CreatedAt,
		})
	}

	return Analytics{
		Total:       len(recs),
		ByRegion:    sortedCounts(byRegion),
		ByStatus:    sortedCounts(byStatus),
		ByIndustry:  sortedCounts(byIndustry),
		RecentNotes: notes,
	}
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Label: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// Percent returns c as a whole-number share of total, for bar widths.
func Percent(c, total int) int {
	if total <= 0 {
		return 0
	}
	return c * 100 / total
}
