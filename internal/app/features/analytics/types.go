// internal/app/features/analytics/types.go
package analytics

import (
	"html/template"

	"github.com/dalemusser/interno/internal/app/system/viewdata"
)

// bar is one labelled count with its share of the total.
type bar struct {
	Label   string
	Count   int
	Percent int
}

// breakdown is one titled bar chart.
type breakdown struct {
	Title string
	Bars  []bar
}

type noteItem struct {
	ID         string
	Name       string
	Notes      template.HTML
	RegionName string
	Created    string
}

type pageData struct {
	viewdata.BaseVM

	Total       int
	Breakdowns  []breakdown
	RecentNotes []noteItem
}
