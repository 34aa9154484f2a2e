package analytics

import (
	"net/http/httptest"
	"testing"
	"time"

	trackersvc "github.com/dalemusser/interno/internal/app/system/tracker"
)

func TestBars_Percentages(t *testing.T) {
	got := bars([]trackersvc.Count{{Label: "A", Count: 1}, {Label: "B", Count: 3}}, 4)
	if len(got) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(got))
	}
	if got[0].Percent != 25 || got[1].Percent != 75 {
		t.Errorf("percentages: got %d and %d", got[0].Percent, got[1].Percent)
	}
}

func TestBars_ZeroTotal(t *testing.T) {
	got := bars(nil, 0)
	if len(got) != 0 {
		t.Errorf("expected no bars, got %+v", got)
	}
}

func TestBuildPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/analytics", nil)
	created := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.Local)
	page := buildPage(r, trackersvc.Analytics{
		Total:      2,
		ByRegion:   []trackersvc.Count{{Label: "Unassigned", Count: 2}},
		ByStatus:   []trackersvc.Count{{Label: "Applied", Count: 1}, {Label: "Emailed", Count: 1}},
		ByIndustry: []trackersvc.Count{{Label: "Tech", Count: 2}},
		RecentNotes: []trackersvc.RecentNote{
			{ID: "1", Name: "Acme", Notes: "call back\nif GPA>3.5", RegionName: "Unassigned", CreatedAt: created},
		},
	})

	if page.Total != 2 {
		t.Errorf("Total: got %d", page.Total)
	}
	if len(page.Breakdowns) != 3 {
		t.Fatalf("Breakdowns: got %d", len(page.Breakdowns))
	}
	if page.Breakdowns[0].Bars[0].Percent != 100 {
		t.Errorf("region bar: got %d%%", page.Breakdowns[0].Bars[0].Percent)
	}
	if len(page.Breakdowns[1].Bars) != 2 || page.Breakdowns[1].Bars[0].Percent != 50 {
		t.Errorf("status bars: %+v", page.Breakdowns[1].Bars)
	}
	if len(page.RecentNotes) != 1 || page.RecentNotes[0].Created != "Jun 1, 2025" {
		t.Errorf("recent notes: %+v", page.RecentNotes)
	}
	if got := string(page.RecentNotes[0].Notes); got != "call back<br>if GPA&gt;3.5" {
		t.Errorf("notes html: got %q", got)
	}
}
