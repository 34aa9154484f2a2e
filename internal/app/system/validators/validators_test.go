package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/interno/internal/app/system/validators"
	"github.com/dalemusser/interno/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}
	for _, expected := range []string{"internships", "regions", "users"} {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func validInternship() bson.M {
	return bson.M{
		"name":              "Acme",
		"name_ci":           "acme",
		"industry_type":     "Technology",
		"address":           "",
		"region_id":         nil,
		"status":            "Applied",
		"priority":          "High",
		"notes":             "",
		"point_of_contacts": bson.A{bson.M{"name": "Ada", "position": "", "email": "ada@acme.test"}},
		"created_at":        time.Now().UTC(),
		"updated_at":        time.Now().UTC(),
	}
}

func TestInternshipsValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	coll := db.Collection("internships")

	if _, err := coll.InsertOne(ctx, validInternship()); err != nil {
		t.Fatalf("insert valid internship failed: %v", err)
	}

	withRegion := validInternship()
	withRegion["region_id"] = primitive.NewObjectID()
	if _, err := coll.InsertOne(ctx, withRegion); err != nil {
		t.Errorf("insert with region failed: %v", err)
	}

	tests := []struct {
		name  string
		field string
		value any
	}{
		{"blank name", "name", "   "},
		{"unknown status", "status", "Ghosted"},
		{"unknown priority", "priority", "Urgent"},
		{"unknown industry", "industry_type", "Mining"},
		{"string region", "region_id", "north"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := validInternship()
			doc[tc.field] = tc.value
			if _, err := coll.InsertOne(ctx, doc); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestRegionsValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := db.Collection("regions").InsertOne(ctx, bson.M{"name": "North"}); err == nil {
		t.Error("expected validation error when name_ci is missing")
	}
	if _, err := db.Collection("regions").InsertOne(ctx, bson.M{"name": "North", "name_ci": "north"}); err != nil {
		t.Errorf("insert valid region failed: %v", err)
	}
}

func TestUsersValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	users := db.Collection("users")

	if _, err := users.InsertOne(ctx, bson.M{"email": "a@b.co"}); err == nil {
		t.Error("expected validation error when inserting user without required fields")
	}
	if _, err := users.InsertOne(ctx, bson.M{
		"email": "a@b.co", "email_ci": "a@b.co", "password_hash": "x", "status": "invalid_status",
	}); err == nil {
		t.Error("expected validation error for invalid status")
	}
	if _, err := users.InsertOne(ctx, bson.M{
		"email": "a@b.co", "email_ci": "a@b.co", "password_hash": "x", "status": "active",
	}); err != nil {
		t.Errorf("insert valid user failed: %v", err)
	}
}
