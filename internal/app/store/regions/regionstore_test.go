package regionstore_test

import (
	"errors"
	"testing"

	internshipstore "github.com/dalemusser/interno/internal/app/store/internships"
	"github.com/dalemusser/interno/internal/app/store/recordstore"
	regionstore "github.com/dalemusser/interno/internal/app/store/regions"
	"github.com/dalemusser/interno/internal/app/system/indexes"
	"github.com/dalemusser/interno/internal/domain/models"
	"github.com/dalemusser/interno/internal/testutil"
)

func TestStore_CreateAndList_OrderedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := regionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"Manila", "cebu", "Davao"} {
		if _, err := store.Create(ctx, name); err != nil {
			t.Fatalf("Create(%q) failed: %v", name, err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var got []string
	for _, r := range list {
		got = append(got, r.Name)
	}
	want := []string{"cebu", "Davao", "Manila"}
	if len(got) != len(want) {
		t.Fatalf("List returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStore_Create_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := regionstore.New(db)

	if _, err := store.Create(ctx, "Cebu"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, "CEBU"); !errors.Is(err, recordstore.ErrDuplicateRegion) {
		t.Errorf("expected ErrDuplicateRegion, got %v", err)
	}
}

func TestStore_Rename(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := regionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r, err := store.Create(ctx, "Norht")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	renamed, err := store.Rename(ctx, r.ID, "  North ")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if renamed.Name != "North" {
		t.Errorf("Name = %q, want North", renamed.Name)
	}

	if _, err := store.Rename(ctx, "000000000000000000000000", "x"); !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete_UnassignsInternships(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := regionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := fixtures.CreateRegion(ctx, "Cebu")
	rec := fixtures.CreateInternship(ctx, "Acme", r.ID)
	if rec.RegionName() != "Cebu" {
		t.Fatalf("expected internship in Cebu, got %q", rec.RegionName())
	}

	if err := store.Delete(ctx, r.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := internshipstore.New(db).Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Region != nil {
		t.Errorf("expected region cleared, got %+v", got.Region)
	}
	if got.RegionName() != models.UnassignedRegion {
		t.Errorf("RegionName() = %q", got.RegionName())
	}

	if err := store.Delete(ctx, r.ID); !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
}
