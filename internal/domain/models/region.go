// internal/domain/models/region.go
package models

import "time"

// Region is a named bucket internships are grouped under.
type Region struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Ref returns the {id, name} pair used on hydrated internships.
func (r Region) Ref() *RegionRef {
	return &RegionRef{ID: r.ID, Name: r.Name}
}
