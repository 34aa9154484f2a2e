package testutil

import (
	"context"
	"net/http"
	"testing"

	internshipstore "github.com/dalemusser/interno/internal/app/store/internships"
	regionstore "github.com/dalemusser/interno/internal/app/store/regions"
	userstore "github.com/dalemusser/interno/internal/app/store/users"
	"github.com/dalemusser/interno/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateRegion inserts a region with the given name.
func (f *Fixtures) CreateRegion(ctx context.Context, name string) models.Region {
	f.t.Helper()
	r, err := regionstore.New(f.db).Create(ctx, name)
	if err != nil {
		f.t.Fatalf("failed to create test region: %v", err)
	}
	return r
}

// CreateInternship inserts an internship with defaults filled in. regionID may be empty.
func (f *Fixtures) CreateInternship(ctx context.Context, name, regionID string) models.HydratedInternship {
	f.t.Helper()
	rec, err := internshipstore.New(f.db).Create(ctx, models.StoredInternship{
		Name:         name,
		IndustryType: models.DefaultIndustry,
		RegionID:     regionID,
		Status:       models.DefaultStatus,
		Priority:     models.DefaultPriority,
		Contacts:     []models.Contact{{Name: "Test Contact", Email: "contact@example.com"}},
	})
	if err != nil {
		f.t.Fatalf("failed to create test internship: %v", err)
	}
	return rec
}

// CreateUser inserts an active account with the given password.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, password string) models.User {
	f.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	u, err := userstore.New(f.db).Create(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Status:       "active",
	})
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateDisabledUser inserts a disabled account.
func (f *Fixtures) CreateDisabledUser(ctx context.Context, fullName, email, password string) models.User {
	f.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	u, err := userstore.New(f.db).Create(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Status:       "disabled",
	})
	if err != nil {
		f.t.Fatalf("failed to create disabled user: %v", err)
	}
	return u
}
