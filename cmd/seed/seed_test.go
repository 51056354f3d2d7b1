package main

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/promptflow/internal/migrations"
	"github.com/JaimeStill/promptflow/internal/prompts"
)

func TestSamplesValid(t *testing.T) {
	if len(samples) != 6 {
		t.Fatalf("samples = %d, want 6", len(samples))
	}

	headlines := make(map[string]bool)
	for _, s := range samples {
		if err := s.Validate(); err != nil {
			t.Errorf("sample %q invalid: %v", s.Headline, err)
		}
		if headlines[s.Headline] {
			t.Errorf("duplicate headline %q", s.Headline)
		}
		headlines[s.Headline] = true

		if s.EffectImage == nil || !strings.HasPrefix(*s.EffectImage, "https://") {
			t.Errorf("sample %q effect image = %v", s.Headline, s.EffectImage)
		}
	}
}

func TestSeedIsAtomic(t *testing.T) {
	dsn := os.Getenv("PROMPTFLOW_TEST_DSN")
	if dsn == "" {
		t.Skip("PROMPTFLOW_TEST_DSN not set")
	}

	if err := migrations.Up(dsn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("TRUNCATE prompt_images, prompts RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	sys := prompts.New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	original := samples
	t.Cleanup(func() { samples = original })

	broken := slices.Clone(original)
	broken[len(broken)-1].Headline = "nul\x00byte"
	samples = broken

	if _, err := seed(ctx, db, sys); err == nil {
		t.Fatal("expected seed error")
	}

	var count int
	if err := db.QueryRow("SELECT count(*) FROM prompts").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("prompts after failed seed = %d, want 0", count)
	}

	samples = original
	n, err := seed(ctx, db, sys)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != len(original) {
		t.Errorf("seeded %d, want %d", n, len(original))
	}

	if n, err := seed(ctx, db, sys); err != nil || n != 0 {
		t.Errorf("second seed = %d, %v; want 0, nil", n, err)
	}
}
