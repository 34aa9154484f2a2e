package internshipstore_test

import (
	"errors"
	"testing"
	"time"

	internshipstore "github.com/dalemusser/interno/internal/app/store/internships"
	"github.com/dalemusser/interno/internal/app/store/recordstore"
	"github.com/dalemusser/interno/internal/domain/models"
	"github.com/dalemusser/interno/internal/testutil"
)

func TestStore_Create_AssignsIDAndTimestamps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := internshipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	region := fixtures.CreateRegion(ctx, "Cebu")

	created, err := store.Create(ctx, models.StoredInternship{
		Name:         "Acme",
		IndustryType: "Technology",
		RegionID:     region.ID,
		Status:       models.StatusApplied,
		Priority:     models.PriorityHigh,
		Contacts:     []models.Contact{{Name: "Ada", Email: "ada@acme.test"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if created.Region == nil || created.Region.Name != "Cebu" || created.Region.ID != region.ID {
		t.Errorf("expected hydrated region Cebu, got %+v", created.Region)
	}
	if len(created.Contacts) != 1 || created.Contacts[0].Name != "Ada" {
		t.Errorf("contacts = %+v", created.Contacts)
	}
}

func TestStore_Create_BadRegionID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := internshipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.StoredInternship{Name: "Acme", RegionID: "nope"})
	if !errors.Is(err, internshipstore.ErrBadRegionID) {
		t.Errorf("expected ErrBadRegionID, got %v", err)
	}
}

func TestStore_List_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := internshipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateInternship(ctx, "First", "")
	time.Sleep(5 * time.Millisecond)
	fixtures.CreateInternship(ctx, "Second", "")

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].Name != "Second" || list[1].Name != "First" {
		t.Errorf("order = [%s, %s], want [Second, First]", list[0].Name, list[1].Name)
	}
	if list[0].Region != nil {
		t.Error("expected no region")
	}
}

func TestStore_Update_PartialFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := internshipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	region := fixtures.CreateRegion(ctx, "Davao")
	rec := fixtures.CreateInternship(ctx, "Acme", "")

	status := models.StatusInterviewed
	rid := region.ID
	updated, err := store.Update(ctx, rec.ID, models.InternshipPatch{Status: &status, RegionID: &rid})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != models.StatusInterviewed {
		t.Errorf("Status = %q", updated.Status)
	}
	if updated.RegionName() != "Davao" {
		t.Errorf("RegionName() = %q", updated.RegionName())
	}
	if updated.Name != "Acme" || len(updated.Contacts) != 1 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if !updated.CreatedAt.Equal(rec.CreatedAt) {
		t.Error("created_at must not change")
	}

	none := ""
	cleared, err := store.Update(ctx, rec.ID, models.InternshipPatch{RegionID: &none})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if cleared.Region != nil {
		t.Errorf("expected region cleared, got %+v", cleared.Region)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := internshipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	notes := "x"
	_, err := store.Update(ctx, "000000000000000000000000", models.InternshipPatch{Notes: &notes})
	if !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := internshipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := fixtures.CreateInternship(ctx, "Acme", "")
	if err := store.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, rec.ID); !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("Get after delete: expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, rec.ID); !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
}
