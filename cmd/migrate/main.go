// Command migrate applies the schema to the configured database and exits.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/quizhubhq/quizhub-backend/pkg/config"
	"github.com/quizhubhq/quizhub-backend/pkg/db"
	"github.com/quizhubhq/quizhub-backend/pkg/logger"
	"github.com/quizhubhq/quizhub-backend/pkg/migrate"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error(context.Background(), "loading configuration", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "quizhub-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})
	ctx := context.Background()

	client, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(ctx, "connecting to database", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := migrate.Run(ctx, client.DB(), logg); err != nil {
		logg.Error(ctx, "applying migrations", err)
		os.Exit(1)
	}
	logg.Info(ctx, "migrations applied")
}
