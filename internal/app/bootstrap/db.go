// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	categorystore "github.com/bintangnugrahaa/course-lms/internal/app/store/categories"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/indexes"
	"github.com/bintangnugrahaa/course-lms/internal/app/system/timeouts"
)

// ConnectDB establishes the MongoDB connection used by the whole app.
// Absence of a reachable database is fatal at startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	connectCtx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Error("MongoDB ping failed", zap.Error(err))
		return DBDeps{}, err
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// seedCategories is the out-of-band category list the dashboard offers.
// Categories are created once on an empty collection and never deleted in
// normal flow.
var seedCategories = []string{
	"Programming",
	"Design",
	"Marketing",
	"Business",
}

// EnsureSchema creates indexes and seeds the category collection.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return err
	}

	categories := categorystore.New(deps.MongoDatabase)
	n, err := categories.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, name := range seedCategories {
		if _, err := categories.Create(ctx, name); err != nil {
			return err
		}
	}
	logger.Info("seeded categories", zap.Int("count", len(seedCategories)))
	return nil
}
