// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/runpro9ja/adminhub/internal/app/store/audit"
	"github.com/runpro9ja/adminhub/internal/app/store/deletionrequests"
	"github.com/runpro9ja/adminhub/internal/app/system/auth"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/timeouts"
	"github.com/runpro9ja/adminhub/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB and builds the remote API client. The API
// is not contacted here; the probe reports its reachability later.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().ApplyURI(appCfg.MongoURI)
	if appCfg.MongoMaxPoolSize > 0 {
		opts.SetMaxPoolSize(appCfg.MongoMaxPoolSize)
	}
	if appCfg.MongoMinPoolSize > 0 {
		opts.SetMinPoolSize(appCfg.MongoMinPoolSize)
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	api, err := runapi.New(runapi.Options{
		BaseURL:       appCfg.APIBaseURL,
		Tokens:        runapi.TokenFunc(auth.TokenFrom),
		RatePerSecond: appCfg.APIRateLimit,
		Burst:         appCfg.APIRateBurst,
		Logger:        logger.Named("runapi"),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("build api client: %w", err)
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		API:           api,
		Probe:         workers.NewAPIProbe(api, logger.Named("apiprobe"), appCfg.APIProbeInterval, timeouts.Ping()),
		Background:    &background{},
	}, nil
}

// EnsureSchema creates the indexes of the console's two collections.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	if err := audit.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	if err := deletionrequests.New(deps.MongoDatabase).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("deletion request indexes: %w", err)
	}
	logger.Info("indexes ensured")
	return nil
}
