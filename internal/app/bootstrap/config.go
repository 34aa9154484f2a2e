// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Interno.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: INTERNO_MONGO_URI, INTERNO_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "record_store", Default: StoreMongo, Desc: "Record store backend: 'mongo' or 'postgres'"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "interno", Desc: "MongoDB database name"},
	{Name: "postgres_dsn", Default: "", Desc: "Postgres DSN (required when record_store is 'postgres')"},

	// Change feed
	{Name: "redis_addr", Default: "", Desc: "Redis address for the change feed (blank uses the in-process hub)"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},

	// Sessions
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "interno-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session cookie lifetime (e.g., 24h, 720h)"},

	// Owner bootstrap
	{Name: "owner_email", Default: "", Desc: "Email of the owner account (created on startup when missing)"},
	{Name: "owner_password", Default: "", Desc: "Password for a newly created owner account"},

	// Tracker
	{Name: "poll_interval", Default: "15s", Desc: "List refresh interval when the change stream is unavailable"},
	{Name: "login_rate_per_minute", Default: 10, Desc: "Sign-in attempts allowed per client IP per minute"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, INTERNO_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "INTERNO", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		RecordStore:   strings.ToLower(strings.TrimSpace(appValues.String("record_store"))),
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),
		PostgresDSN:   appValues.String("postgres_dsn"),

		RedisAddr:     strings.TrimSpace(appValues.String("redis_addr")),
		RedisPassword: appValues.String("redis_password"),
		RedisDB:       appValues.Int("redis_db"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 30*24*time.Hour),

		OwnerEmail:    strings.TrimSpace(appValues.String("owner_email")),
		OwnerPassword: appValues.String("owner_password"),

		PollInterval:       appValues.Duration("poll_interval", 15*time.Second),
		LoginRatePerMinute: appValues.Int("login_rate_per_minute"),
	}
	if appCfg.RecordStore == "" {
		appCfg.RecordStore = StoreMongo
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// It checks the store choice and the connection settings for the selected
// store so misconfiguration fails before any connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.RecordStore {
	case StoreMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if strings.TrimSpace(appCfg.MongoDatabase) == "" {
			return fmt.Errorf("mongo_database is required")
		}
	case StorePostgres:
		if strings.TrimSpace(appCfg.PostgresDSN) == "" {
			return fmt.Errorf("record_store 'postgres' requires postgres_dsn to be set")
		}
	default:
		return fmt.Errorf("unknown record_store %q (want %q or %q)", appCfg.RecordStore, StoreMongo, StorePostgres)
	}

	if appCfg.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", appCfg.PollInterval)
	}
	if appCfg.LoginRatePerMinute <= 0 {
		return fmt.Errorf("login_rate_per_minute must be positive, got %d", appCfg.LoginRatePerMinute)
	}
	if (appCfg.OwnerEmail == "") != (appCfg.OwnerPassword == "") {
		return fmt.Errorf("owner_email and owner_password must be set together")
	}

	return nil
}
