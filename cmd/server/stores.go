package main

import (
	"coachvision/backend/internal/config"
	"coachvision/backend/internal/repository"
	"coachvision/backend/internal/repository/gormstore"
	"coachvision/backend/internal/repository/mongo"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type stores struct {
	users  repository.UserRepository
	plans  repository.PlanRepository
	videos repository.VideoAnalysisRepository
	health func(ctx context.Context) error
	close  func()
}

// openStores connects the backend named by cfg.Driver and prepares its schema.
func openStores(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*stores, error) {
	switch cfg.Driver {
	case gormstore.DriverSQLite, gormstore.DriverPostgres:
		db, err := gormstore.Open(cfg.Driver, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		if err := gormstore.AutoMigrate(db); err != nil {
			_ = gormstore.Close(db)
			return nil, fmt.Errorf("migrate schema: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &stores{
			users:  gormstore.NewUserRepository(db),
			plans:  gormstore.NewPlanRepository(db),
			videos: gormstore.NewVideoAnalysisRepository(db),
			health: sqlDB.PingContext,
			close: func() {
				if err := gormstore.Close(db); err != nil {
					log.Error("Failed to close database", zap.Error(err))
				}
			},
		}, nil

	case "mongo":
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, err
		}
		appDB := client.Database(cfg.Name)

		indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		mongo.EnsureIndexes(indexCtx, appDB, log)

		return &stores{
			users:  mongo.NewMongoUserRepository(appDB),
			plans:  mongo.NewMongoPlanRepository(appDB),
			videos: mongo.NewMongoVideoRepository(appDB),
			health: func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close: func() {
				log.Info("Disconnecting MongoDB...")
				if err := mongo.DisconnectDB(client); err != nil {
					log.Error("Failed to disconnect MongoDB", zap.Error(err))
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q (want sqlite, postgres or mongo)", cfg.Driver)
	}
}
