// Package recordstore declares what the tracker needs from a record store.
// The Mongo stores (internships, regions, users) and the Postgres store
// (pgrecords) both satisfy these interfaces.
package recordstore

import (
	"context"
	"errors"

	"github.com/dalemusser/interno/internal/app/system/apperr"
	"github.com/dalemusser/interno/internal/domain/models"
)

// ErrNotFound is returned when no record matches the given id. Malformed
// ids are reported the same way.
var ErrNotFound = apperr.ErrNotFound

// ErrDuplicateRegion is returned when a region name is already taken
// (compared case-insensitively).
var ErrDuplicateRegion = errors.New("a region with this name already exists")

// ErrDuplicateUser is returned when an account email is already taken.
var ErrDuplicateUser = errors.New("a user with this email already exists")

// Internships stores internship records. Reads return hydrated records with
// the region resolved.
type Internships interface {
	// List returns every internship, newest first.
	List(ctx context.Context) ([]models.HydratedInternship, error)
	Get(ctx context.Context, id string) (models.HydratedInternship, error)
	// Create assigns id, created_at and updated_at.
	Create(ctx context.Context, in models.StoredInternship) (models.HydratedInternship, error)
	// Update applies only the non-nil patch fields.
	Update(ctx context.Context, id string, patch models.InternshipPatch) (models.HydratedInternship, error)
	Delete(ctx context.Context, id string) error
}

// Regions stores region records.
type Regions interface {
	// List returns every region ordered by name.
	List(ctx context.Context) ([]models.Region, error)
	Get(ctx context.Context, id string) (models.Region, error)
	Create(ctx context.Context, name string) (models.Region, error)
	Rename(ctx context.Context, id, name string) (models.Region, error)
	// Delete removes the region; internships that referenced it become unassigned.
	Delete(ctx context.Context, id string) error
}

// Users stores accounts for the sign-in provider.
type Users interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	Count(ctx context.Context) (int64, error)
}

// Backend bundles the three stores of one record-store implementation.
type Backend struct {
	Internships Internships
	Regions     Regions
	Users       Users
	// Ping checks connectivity for the health endpoint.
	Ping func(ctx context.Context) error
	// Name identifies the implementation ("mongo" or "postgres").
	Name string
}
