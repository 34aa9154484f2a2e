// internal/domain/models/internship.go
package models

import (
	"strings"
	"time"
)

// UnassignedRegion is the group label used for internships with no region.
const UnassignedRegion = "Unassigned"

// Contact is a person attached to an internship. It has no identity of its own.
type Contact struct {
	Name     string `json:"name" bson:"name"`
	Position string `json:"position" bson:"position"`
	Email    string `json:"email" bson:"email"`
}

// IsBlank reports whether name, position and email are all empty or whitespace.
func (c Contact) IsBlank() bool {
	return strings.TrimSpace(c.Name) == "" &&
		strings.TrimSpace(c.Position) == "" &&
		strings.TrimSpace(c.Email) == ""
}

// CleanContacts returns the contacts that are not blank, preserving order.
// It never returns nil and never modifies its argument.
func CleanContacts(contacts []Contact) []Contact {
	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.IsBlank() {
			continue
		}
		out = append(out, c)
	}
	return out
}

// RegionRef is the resolved {id, name} pair joined onto an internship on reads.
type RegionRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StoredInternship is the shape written to the record store. It references
// its region by id only.
type StoredInternship struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	IndustryType string    `json:"industry_type"`
	Address      string    `json:"address"`
	RegionID     string    `json:"region_id,omitempty"` // empty = no region
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	Notes        string    `json:"notes"`
	Contacts     []Contact `json:"point_of_contacts"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HydratedInternship is the read shape: same fields, with the region resolved.
type HydratedInternship struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	IndustryType string     `json:"industry_type"`
	Address      string     `json:"address"`
	Region       *RegionRef `json:"region"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Notes        string     `json:"notes"`
	Contacts     []Contact  `json:"point_of_contacts"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Hydrate joins a stored internship with its resolved region. A nil region
// yields a record that groups under UnassignedRegion.
func Hydrate(s StoredInternship, region *RegionRef) HydratedInternship {
	var ref *RegionRef
	if region != nil {
		r := *region
		ref = &r
	}
	return HydratedInternship{
		ID:           s.ID,
		Name:         s.Name,
		IndustryType: s.IndustryType,
		Address:      s.Address,
		Region:       ref,
		Status:       s.Status,
		Priority:     s.Priority,
		Notes:        s.Notes,
		Contacts:     append([]Contact(nil), s.Contacts...),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// Stored strips the resolved region back to its id.
func (h HydratedInternship) Stored() StoredInternship {
	regionID := ""
	if h.Region != nil {
		regionID = h.Region.ID
	}
	return StoredInternship{
		ID:           h.ID,
		Name:         h.Name,
		IndustryType: h.IndustryType,
		Address:      h.Address,
		RegionID:     regionID,
		Status:       h.Status,
		Priority:     h.Priority,
		Notes:        h.Notes,
		Contacts:     append([]Contact(nil), h.Contacts...),
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

// RegionName returns the group label for this record.
func (h HydratedInternship) RegionName() string {
	if h.Region == nil || h.Region.Name == "" {
		return UnassignedRegion
	}
	return h.Region.Name
}

// RegionID returns the region id, or "" when unassigned.
func (h HydratedInternship) RegionID() string {
	if h.Region == nil {
		return ""
	}
	return h.Region.ID
}

// InternshipPatch is a partial update. Nil fields are left untouched.
// RegionID set to "" clears the region.
type InternshipPatch struct {
	Name         *string
	IndustryType *string
	Address      *string
	RegionID     *string
	Status       *string
	Priority     *string
	Notes        *string
	Contacts     *[]Contact
}

// IsEmpty reports whether the patch changes nothing.
func (p InternshipPatch) IsEmpty() bool {
	return p.Name == nil && p.IndustryType == nil && p.Address == nil &&
		p.RegionID == nil && p.Status == nil && p.Priority == nil &&
		p.Notes == nil && p.Contacts == nil
}

// Apply returns a copy of s with the patch fields applied.
func (p InternshipPatch) Apply(s StoredInternship) StoredInternship {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.IndustryType != nil {
		s.IndustryType = *p.IndustryType
	}
	if p.Address != nil {
		s.Address = *p.Address
	}
	if p.RegionID != nil {
		s.RegionID = *p.RegionID
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.Priority != nil {
		s.Priority = *p.Priority
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	if p.Contacts != nil {
		s.Contacts = append([]Contact(nil), (*p.Contacts)...)
	}
	return s
}
