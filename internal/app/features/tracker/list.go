// internal/app/features/tracker/list.go
package tracker

import (
	"context"
	"net/http"

	"github.com/dalemusser/interno/internal/app/system/timeouts"
	"github.com/dalemusser/interno/internal/app/system/trackerview"
	"github.com/dalemusser/interno/internal/app/system/viewdata"
	"github.com/dalemusser/interno/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET / (query: q, sort, status, priority).
// It supports HTMX partial refresh of the grouped list when
// HX-Target="tracker-groups"; the page script uses that to refetch after a
// change notification.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	sel := trackerview.ParseSelection(r.URL.Query())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	recs, err := h.Svc.ListInternships(ctx)
	if err != nil {
		h.ErrLog.LogLoadError(w, r, "list internships failed", err, "Unable to load internships")
		return
	}
	regions, err := h.Svc.ListRegions(ctx)
	if err != nil {
		h.ErrLog.LogLoadError(w, r, "list regions failed", err, "Unable to load regions")
		return
	}

	groups := trackerview.Transform(recs, sel)

	data := listData{
		BaseVM:           viewdata.NewBaseVM(r, "Tracker", "/"),
		Q:                sel.Query,
		Sort:             sel.Sort,
		Status:           sel.Status,
		Priority:         sel.Priority,
		SortOptions:      trackerview.SortOptions,
		StatusOptions:    models.StatusOptions,
		PriorityOptions:  models.PriorityOptions,
		HasActiveFilters: sel.HasActiveFilters(),
		Sections:         buildSections(groups, regions, !sel.HasActiveFilters()),
		Shown:            groups.Count(),
		Total:            len(recs),
		ReturnURL:        listURL(sel),
		ChangesURL:       "/changes",
		PollIntervalMS:   h.PollInterval.Milliseconds(),
	}

	// HTMX partial: just the grouped list
	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == groupsTarget {
		templates.RenderSnippet(w, "tracker_groups", data)
		return
	}

	templates.Render(w, r, "tracker_list", data)
}

// listURL is the tracker page URL for sel.
func listURL(sel trackerview.Selection) string {
	if q := sel.Values().Encode(); q != "" {
		return "/?" + q
	}
	return "/"
}
