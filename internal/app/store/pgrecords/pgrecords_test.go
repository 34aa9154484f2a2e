package pgrecords_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dalemusser/interno/internal/app/store/pgrecords"
	"github.com/dalemusser/interno/internal/app/store/recordstore"
	"github.com/dalemusser/interno/internal/domain/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dsnEnv = "INTERNO_TEST_POSTGRES_DSN"

func setup(t *testing.T) (recordstore.Backend, context.Context) {
	t.Helper()
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s not set", dsnEnv)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	t.Cleanup(cancel)

	pool, err := pgrecords.Open(ctx, dsn, pgrecords.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pgrecords.EnsureSchema(ctx, pool))
	truncate(t, ctx, pool)
	t.Cleanup(func() { truncate(t, context.Background(), pool) })

	return pgrecords.NewBackend(pool), ctx
}

func truncate(t *testing.T, ctx context.Context, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(ctx, `truncate internships, regions, users;`)
	require.NoError(t, err)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	b, ctx := setup(t)
	require.NoError(t, b.Ping(ctx))
	assert.Equal(t, "postgres", b.Name)
}

func TestRegions_CRUD(t *testing.T) {
	b, ctx := setup(t)

	south, err := b.Regions.Create(ctx, " South ")
	require.NoError(t, err)
	assert.Equal(t, "South", south.Name)
	assert.NotEmpty(t, south.ID)

	_, err = b.Regions.Create(ctx, "north")
	require.NoError(t, err)

	_, err = b.Regions.Create(ctx, "SOUTH")
	assert.ErrorIs(t, err, recordstore.ErrDuplicateRegion)

	list, err := b.Regions.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "north", list[0].Name)
	assert.Equal(t, "South", list[1].Name)

	renamed, err := b.Regions.Rename(ctx, south.ID, "Southeast")
	require.NoError(t, err)
	assert.Equal(t, "Southeast", renamed.Name)

	_, err = b.Regions.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, recordstore.ErrNotFound)
}

func TestInternships_CreateHydratesRegion(t *testing.T) {
	b, ctx := setup(t)

	region, err := b.Regions.Create(ctx, "Cebu")
	require.NoError(t, err)

	rec, err := b.Internships.Create(ctx, models.StoredInternship{
		Name:         "Acme",
		IndustryType: "Technology",
		RegionID:     region.ID,
		Status:       models.StatusApplied,
		Priority:     models.PriorityHigh,
		Contacts:     []models.Contact{{Name: "Ada", Position: "CTO", Email: "ada@acme.test"}},
	})
	require.NoError(t, err)
	require.NotNil(t, rec.Region)
	assert.Equal(t, "Cebu", rec.Region.Name)
	assert.Equal(t, region.ID, rec.Region.ID)
	require.Len(t, rec.Contacts, 1)
	assert.Equal(t, "CTO", rec.Contacts[0].Position)
	assert.False(t, rec.CreatedAt.IsZero())

	_, err = b.Internships.Create(ctx, models.StoredInternship{Name: "Bad", RegionID: "nope"})
	assert.ErrorIs(t, err, pgrecords.ErrBadRegionID)
}

func TestInternships_ListNewestFirst(t *testing.T) {
	b, ctx := setup(t)

	_, err := b.Internships.Create(ctx, models.StoredInternship{Name: "First", Status: models.DefaultStatus, Priority: models.DefaultPriority})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = b.Internships.Create(ctx, models.StoredInternship{Name: "Second", Status: models.DefaultStatus, Priority: models.DefaultPriority})
	require.NoError(t, err)

	list, err := b.Internships.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Name)
	assert.Equal(t, "First", list[1].Name)
	assert.Nil(t, list[0].Region)
	assert.NotNil(t, list[0].Contacts)
}

func TestInternships_UpdateAndDelete(t *testing.T) {
	b, ctx := setup(t)

	rec, err := b.Internships.Create(ctx, models.StoredInternship{Name: "Acme", Status: models.DefaultStatus, Priority: models.DefaultPriority})
	require.NoError(t, err)

	notes := "Follow up Friday"
	updated, err := b.Internships.Update(ctx, rec.ID, models.InternshipPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, models.DefaultStatus, updated.Status)

	_, err = b.Internships.Update(ctx, "00000000-0000-0000-0000-000000000000", models.InternshipPatch{Notes: &notes})
	assert.ErrorIs(t, err, recordstore.ErrNotFound)

	require.NoError(t, b.Internships.Delete(ctx, rec.ID))
	assert.ErrorIs(t, b.Internships.Delete(ctx, rec.ID), recordstore.ErrNotFound)
}

func TestRegions_DeleteUnassignsInternships(t *testing.T) {
	b, ctx := setup(t)

	region, err := b.Regions.Create(ctx, "Davao")
	require.NoError(t, err)
	rec, err := b.Internships.Create(ctx, models.StoredInternship{Name: "Acme", RegionID: region.ID, Status: models.DefaultStatus, Priority: models.DefaultPriority})
	require.NoError(t, err)

	require.NoError(t, b.Regions.Delete(ctx, region.ID))

	got, err := b.Internships.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Region)
	assert.Equal(t, models.UnassignedRegion, got.RegionName())
}

func TestUsers_CreateAndLookup(t *testing.T) {
	b, ctx := setup(t)

	u, err := b.Users.Create(ctx, models.User{Email: "Owner@Example.com", FullName: "Owner", PasswordHash: "x"})
	require.NoError(t, err)
	assert.Equal(t, "active", u.Status)

	found, err := b.Users.GetByEmail(ctx, "owner@example.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = b.Users.Create(ctx, models.User{Email: "owner@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, recordstore.ErrDuplicateUser)

	n, err := b.Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
