package bootstrap

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/interno/internal/app/store/mongorecords"
	"github.com/dalemusser/interno/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig() AppConfig {
	return AppConfig{
		RecordStore:        StoreMongo,
		MongoURI:           "mongodb://localhost:27017",
		MongoDatabase:      "interno",
		PollInterval:       15 * time.Second,
		LoginRatePerMinute: 10,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid mongo", func(*AppConfig) {}, ""},
		{"valid postgres", func(c *AppConfig) {
			c.RecordStore = StorePostgres
			c.MongoURI = ""
			c.PostgresDSN = "postgres://localhost/interno"
		}, ""},
		{"bad mongo uri", func(c *AppConfig) { c.MongoURI = "http://nope" }, "invalid MongoDB URI"},
		{"postgres without dsn", func(c *AppConfig) { c.RecordStore = StorePostgres }, "postgres_dsn"},
		{"unknown store", func(c *AppConfig) { c.RecordStore = "sqlite" }, "unknown record_store"},
		{"zero poll interval", func(c *AppConfig) { c.PollInterval = 0 }, "poll_interval"},
		{"zero login rate", func(c *AppConfig) { c.LoginRatePerMinute = 0 }, "login_rate_per_minute"},
		{"owner email without password", func(c *AppConfig) { c.OwnerEmail = "me@example.com" }, "owner_email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger())
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error: got %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnsureOwner_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db, Records: mongorecords.NewBackend(db)}

	if err := ensureOwner(ctx, deps, "owner@test.com", "s3cret-pass", testLogger()); err != nil {
		t.Fatalf("ensureOwner failed: %v", err)
	}

	user, err := deps.Records.Users.GetByEmail(ctx, "owner@test.com")
	if err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}
	if user.Status != "active" {
		t.Errorf("expected status 'active', got %q", user.Status)
	}
	if user.FullName != ownerFullName {
		t.Errorf("expected name %q, got %q", ownerFullName, user.FullName)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Errorf("password hash does not match: %v", err)
	}
}

func TestEnsureOwner_LeavesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	existing := fixtures.CreateUser(ctx, "Existing Owner", "owner@test.com", "original-pass")

	deps := DBDeps{MongoDatabase: db, Records: mongorecords.NewBackend(db)}
	if err := ensureOwner(ctx, deps, "owner@test.com", "different-pass", testLogger()); err != nil {
		t.Fatalf("ensureOwner failed: %v", err)
	}

	user, err := deps.Records.Users.GetByEmail(ctx, "owner@test.com")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if user.ID != existing.ID || user.FullName != "Existing Owner" {
		t.Errorf("existing account should be untouched, got %+v", user)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("original-pass")); err != nil {
		t.Error("existing password must not be replaced")
	}

	n, err := deps.Records.Users.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}
}

func TestEnsureOwner_NoEmailIsNoop(t *testing.T) {
	if err := ensureOwner(t.Context(), DBDeps{}, "", "", testLogger()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
