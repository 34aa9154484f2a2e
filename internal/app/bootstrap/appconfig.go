// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// Record store backends.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, timeouts); everything
// specific to Interno lives here.
type AppConfig struct {
	// Record store selection
	RecordStore string // "mongo" (default) or "postgres"

	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Postgres connection configuration (only used if RecordStore is "postgres")
	PostgresDSN string

	// Change feed. Blank RedisAddr uses the in-process hub.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: interno-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Owner account created at startup when missing
	OwnerEmail    string
	OwnerPassword string

	// Tracker page refresh
	PollInterval time.Duration // Fallback list refresh when the change stream is unavailable

	// Sign-in throttling
	LoginRatePerMinute int
}
