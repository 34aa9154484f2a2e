// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/interno/internal/app/store/mongorecords"
	"github.com/dalemusser/interno/internal/app/store/pgrecords"
	"github.com/dalemusser/interno/internal/app/system/changefeed"
	"github.com/dalemusser/interno/internal/app/system/indexes"
	"github.com/dalemusser/interno/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	mongoConnectTimeout = 10 * time.Second
	redisPingTimeout    = 2 * time.Second
)

// ConnectDB opens the selected record store and the change feed.
//
// A configured but unreachable Redis is not fatal: the app logs a warning
// and uses the in-process hub, which still serves a single instance.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var deps DBDeps

	switch appCfg.RecordStore {
	case StorePostgres:
		pool, err := pgrecords.Open(ctx, appCfg.PostgresDSN, pgrecords.PoolOptions{})
		if err != nil {
			logger.Error("postgres connect failed", zap.Error(err))
			return DBDeps{}, err
		}
		deps.PGPool = pool
		deps.Records = pgrecords.NewBackend(pool)
		logger.Info("connected to Postgres record store")

	default:
		client, err := connectMongo(ctx, appCfg.MongoURI)
		if err != nil {
			logger.Error("mongo connect failed", zap.Error(err))
			return DBDeps{}, err
		}
		deps.MongoClient = client
		deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
		deps.Records = mongorecords.NewBackend(deps.MongoDatabase)
		logger.Info("connected to MongoDB record store", zap.String("database", appCfg.MongoDatabase))
	}

	deps.Redis, deps.Changes = connectChangeFeed(ctx, appCfg, logger)
	return deps, nil
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	cctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	// Fail fast
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func connectChangeFeed(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (*redis.Client, changefeed.Hub) {
	if appCfg.RedisAddr == "" {
		logger.Info("change feed: in-process hub")
		return nil, changefeed.NewMemoryHub(logger)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     appCfg.RedisAddr,
		Password: appCfg.RedisPassword,
		DB:       appCfg.RedisDB,
	})
	pctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		logger.Warn("redis ping failed; change feed falls back to in-process hub",
			zap.String("addr", appCfg.RedisAddr), zap.Error(err))
		_ = client.Close()
		return nil, changefeed.NewMemoryHub(logger)
	}

	logger.Info("change feed: redis pub/sub", zap.String("addr", appCfg.RedisAddr), zap.String("channel", changefeed.DefaultChannel))
	return client, changefeed.NewRedisHub(client, changefeed.DefaultChannel, logger)
}

// EnsureSchema sets up indexes and validators (Mongo) or tables (Postgres).
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.PGPool != nil {
		if err := pgrecords.EnsureSchema(ctx, deps.PGPool); err != nil {
			logger.Error("postgres schema setup failed", zap.Error(err))
			return err
		}
		return nil
	}

	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("mongo validators setup failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("mongo index setup failed", zap.Error(err))
		return err
	}
	return nil
}
