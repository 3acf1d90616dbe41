// Command setup-db provisions the database ahead of a deploy: it applies the
// pending migrations and inserts the default subjects.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"neetprep-backend/internal/config"
	"neetprep-backend/internal/database"
	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/repository"
	"neetprep-backend/internal/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "setup-db: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("Connecting to database")
	pool, err := database.NewPostgresPool(cfg.DatabaseURL, 2)
	if err != nil {
		return err
	}
	defer pool.Close()

	log.Info("Applying migrations", "dir", cfg.MigrationsDir)
	if err := database.RunMigrations(pool, cfg.MigrationsDir, log); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Info("Inserting default data")
	if err := seed.NewInitializer(repository.NewSubjectRepo(pool), log).Initialize(ctx); err != nil {
		return err
	}

	log.Info("Database setup complete")
	return nil
}
