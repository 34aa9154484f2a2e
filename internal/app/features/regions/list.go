// internal/app/features/regions/list.go
package regions

import (
	"context"
	"net/http"

	"github.com/dalemusser/interno/internal/app/system/timeouts"
	"github.com/dalemusser/interno/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /regions. Each region shows how many internships
// reference it.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	regions, err := h.Svc.ListRegions(ctx)
	if err != nil {
		h.ErrLog.LogLoadError(w, r, "list regions failed", err, "Unable to load regions")
		return
	}
	recs, err := h.Svc.ListInternships(ctx)
	if err != nil {
		h.ErrLog.LogLoadError(w, r, "list internships failed", err, "Unable to load regions")
		return
	}

	counts := make(map[string]int, len(regions))
	unassigned := 0
	for _, rec := range recs {
		if rec.Region == nil || rec.Region.Name == "" {
			unassigned++
			continue
		}
		counts[rec.Region.ID]++
	}

	items := make([]listItem, 0, len(regions))
	for _, reg := range regions {
		items = append(items, listItem{
			ID:               reg.ID,
			Name:             reg.Name,
			InternshipsCount: counts[reg.ID],
			CreatedShort:     reg.CreatedAt.Local().Format("Jan 2, 2006"),
		})
	}

	templates.Render(w, r, "regions_list", listData{
		BaseVM:          viewdata.NewBaseVM(r, "Regions", "/"),
		Items:           items,
		UnassignedCount: unassigned,
	})
}
