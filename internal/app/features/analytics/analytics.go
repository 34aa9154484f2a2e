// internal/app/features/analytics/analytics.go
package analytics

import (
	"context"
	"net/http"

	"github.com/dalemusser/interno/internal/app/system/htmlsanitize"
	"github.com/dalemusser/interno/internal/app/system/timeouts"
	trackersvc "github.com/dalemusser/interno/internal/app/system/tracker"
	"github.com/dalemusser/interno/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeAnalytics renders totals and breakdowns derived from one bulk read.
func (h *Handler) ServeAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	a, err := h.Svc.Analytics(ctx)
	if err != nil {
		h.ErrLog.LogLoadError(w, r, "analytics load failed", err, "Unable to load analytics")
		return
	}

	templates.Render(w, r, "analytics_page", buildPage(r, a))
}

func buildPage(r *http.Request, a trackersvc.Analytics) pageData {
	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, "Analytics", "/"),
		Total:  a.Total,
		Breakdowns: []breakdown{
			{Title: "By region", Bars: bars(a.ByRegion, a.Total)},
			{Title: "By status", Bars: bars(a.ByStatus, a.Total)},
			{Title: "By industry", Bars: bars(a.ByIndustry, a.Total)},
		},
	}
	for _, n := range a.RecentNotes {
		data.RecentNotes = append(data.RecentNotes, noteItem{
			ID:         n.ID,
			Name:       n.Name,
			Notes:      htmlsanitize.PlainTextToHTML(n.Notes),
			RegionName: n.RegionName,
			Created:    n.CreatedAt.Local().Format("Jan 2, 2006"),
		})
	}
	return data
}

func bars(counts []trackersvc.Count, total int) []bar {
	out := make([]bar, 0, len(counts))
	for _, c := range counts {
		out = append(out, bar{Label: c.Label, Count: c.Count, Percent: trackersvc.Percent(c.Count, total)})
	}
	return out
}
