// internal/app/features/tracker/types.go
package tracker

import (
	"github.com/dalemusser/interno/internal/app/system/formutil"
	"github.com/dalemusser/interno/internal/app/system/trackerview"
	"github.com/dalemusser/interno/internal/app/system/viewdata"
	"github.com/dalemusser/interno/internal/domain/models"
)

// groupsTarget is the HX-Target id of the grouped list wrapper.
const groupsTarget = "tracker-groups"

// quickAction is one status button in a row's menu.
type quickAction struct {
	Status   string
	Disabled bool // already in this status
}

// rowVM is one internship as the list renders it.
type rowVM struct {
	ID            string
	Name          string
	Initials      string
	IndustryType  string
	Address       string
	RegionName    string
	Status        string
	StatusClass   string
	Priority      string
	PriorityClass string
	Notes         string
	NotesPreview  string
	HasNotes      bool
	Contacts      []models.Contact
	ContactCount  int
	CreatedShort  string
	CreatedLong   string
	QuickActions  []quickAction
}

// sectionVM is one collapsible region block.
type sectionVM struct {
	Name    string
	DOMID   string
	Count   int
	Rows    []rowVM
	IsEmpty bool
}

// listData is the view model for the tracker page.
type listData struct {
	viewdata.BaseVM

	Q        string
	Sort     string
	Status   string
	Priority string

	SortOptions     []trackerview.SortOption
	StatusOptions   []string
	PriorityOptions []string

	HasActiveFilters bool
	Sections         []sectionVM
	Shown            int
	Total            int

	// ReturnURL is the current page with its selection, so forms and row
	// actions come back to the same view.
	ReturnURL      string
	ChangesURL     string
	PollIntervalMS int64
}

// contactSlot is one contact row in the internship form.
type contactSlot struct {
	Index    int
	Name     string
	Position string
	Email    string
}

// formData is the view model for the new and edit internship forms.
type formData struct {
	formutil.Base

	ID     string
	IsEdit bool
	Action string

	Name         string
	IndustryType string
	Address      string
	RegionID     string
	Status       string
	Priority     string
	Notes        string
	Contacts     []contactSlot
	CanRemove    bool

	Regions         []models.Region
	IndustryTypes   []string
	StatusOptions   []string
	PriorityOptions []string

	ReturnURL string
}

// contactsModalData is used for the HTMX contacts modal.
type contactsModalData struct {
	ID       string
	Name     string
	Contacts []models.Contact
}

// notesModalData is used for the HTMX notes editor modal.
type notesModalData struct {
	ID        string
	Name      string
	Notes     string
	ReturnURL string
}
