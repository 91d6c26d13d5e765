// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/strataministry/internal/app/store/admins"
	"github.com/dalemusser/strataministry/internal/app/store/ratelimit"
	"github.com/dalemusser/strataministry/internal/app/store/records"
	"github.com/dalemusser/strataministry/internal/app/system/indexes"
	"github.com/dalemusser/strataministry/internal/app/system/seeding"
	"github.com/dalemusser/strataministry/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB and builds the stores that sit on it.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema
// and Startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	// Configure MongoDB connection pool
	poolCfg := wafflemongo.DefaultPoolConfig()
	if appCfg.MongoMaxPoolSize > 0 {
		poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
	}
	if appCfg.MongoMinPoolSize > 0 {
		poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
	}

	client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
	if err != nil {
		return DBDeps{}, err
	}

	db := client.Database(appCfg.MongoDatabase)

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
		zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
	)

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Records:       records.New(db),
		Admins:        admins.New(db),
		LoginAttempts: ratelimit.New(db, ratelimit.Policy{
			MaxAttempts: appCfg.RateLimitLoginAttempts,
			Window:      appCfg.RateLimitLoginWindow,
			Lockout:     appCfg.RateLimitLoginLockout,
		}),
	}, nil
}

// EnsureSchema creates collections, validators and indexes, then seeds the
// configured admin.
//
// This runs after ConnectDB succeeds but before Startup. The context has a
// timeout based on coreCfg.IndexBootTimeout.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	// Collections and validators first so indexes land on existing collections.
	logger.Info("ensuring collections and validators")
	if err := validators.EnsureAll(ctx, db, logger); err != nil {
		logger.Error("failed to ensure validators", zap.Error(err))
		return err
	}

	logger.Info("ensuring database indexes")
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure indexes", zap.Error(err))
		return err
	}

	logger.Info("seeding default data")
	seed := seeding.AdminSeed{Email: appCfg.SeedAdminEmail, Password: appCfg.SeedAdminPassword}
	if err := seeding.SeedAll(ctx, db, seed, logger); err != nil {
		logger.Error("failed to seed default data", zap.Error(err))
		return err
	}

	logger.Info("database schema ensured successfully")
	return nil
}
