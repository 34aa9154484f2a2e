// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/interno/internal/app/store/recordstore"
	"github.com/dalemusser/interno/internal/app/system/changefeed"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app. Exactly one of
// the Mongo or Postgres handles is set, matching AppConfig.RecordStore.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	PGPool        *pgxpool.Pool
	Redis         *redis.Client

	// Records is the store the tracker reads and writes through.
	Records recordstore.Backend
	// Changes carries change notifications to open tracker pages.
	Changes changefeed.Hub
}
