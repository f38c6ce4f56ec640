package main

// Apply schema migrations and the category seed:
//   go run ./cmd/migrate

import (
	"context"
	"log/slog"
	"os"

	"example.com/wedding-marketplace/backend/internal/config"
	"example.com/wedding-marketplace/backend/internal/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	sqlDB := database.SQLDB(pool)
	defer sqlDB.Close()

	if err := database.RunMigrations(ctx, sqlDB); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("migrations applied")
}
