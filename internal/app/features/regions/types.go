// internal/app/features/regions/types.go
package regions

import (
	"github.com/dalemusser/interno/internal/app/system/formutil"
	"github.com/dalemusser/interno/internal/app/system/viewdata"
)

// listItem is a single row in the regions list.
type listItem struct {
	ID               string
	Name             string
	InternshipsCount int
	CreatedShort     string
}

// listData is the view model for the regions list page.
type listData struct {
	viewdata.BaseVM

	Items           []listItem
	UnassignedCount int
}

// formData is the view model for the new and edit region forms.
type formData struct {
	formutil.Base

	ID     string
	IsEdit bool
	Action string
	Name   string
}
