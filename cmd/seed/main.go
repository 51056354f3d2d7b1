package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JaimeStill/promptflow/internal/config"
	"github.com/JaimeStill/promptflow/internal/infrastructure"
	"github.com/JaimeStill/promptflow/internal/migrations"
	"github.com/JaimeStill/promptflow/internal/prompts"
)

func main() {
	migrate := flag.Bool("migrate", false, "Apply pending migrations before seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("env file load failed: ", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *migrate); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, migrate bool) error {
	if migrate {
		if err := migrations.Up(cfg.Database.URL()); err != nil {
			return err
		}
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return err
	}
	db := infra.Database.Connection()
	defer db.Close()

	if err := infra.Database.Ping(ctx); err != nil {
		return err
	}

	logger := infra.Logger.With("command", "seed")

	n, err := seed(ctx, db, prompts.New(db, logger))
	if err != nil {
		return err
	}

	if n == 0 {
		logger.Info("prompts table not empty, skipping seed")
		return nil
	}
	logger.Info("seed complete", "prompts", n)
	return nil
}

// seed inserts the sample prompts in one transaction when the prompts table
// is empty and returns how many were inserted. A failed run leaves the table
// empty so the next run retries.
func seed(ctx context.Context, db *sql.DB, sys prompts.System) (int, error) {
	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM prompts)").Scan(&exists); err != nil {
		return 0, fmt.Errorf("check prompts: %w", err)
	}
	if exists {
		return 0, nil
	}

	ids, err := sys.CreateBatch(ctx, samples)
	if err != nil {
		return 0, fmt.Errorf("seed prompts: %w", err)
	}
	return len(ids), nil
}
