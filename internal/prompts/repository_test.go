package prompts_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/promptflow/internal/migrations"
	"github.com/JaimeStill/promptflow/internal/prompts"
)

// openTestDB connects to the database named by PROMPTFLOW_TEST_DSN, applies
// migrations, and empties the prompt tables.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

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
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("TRUNCATE prompt_images, prompts RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func newCommand(category string, images ...string) prompts.CreateCommand {
	return prompts.CreateCommand{
		Model:       "Midjourney",
		Mode:        "Image Generation",
		Category:    category,
		Author:      "Tester",
		Headline:    "Headline",
		Description: "Description",
		PromptText:  "prompt text",
		Images:      images,
	}
}

func paths(images []prompts.Image) []string {
	out := make([]string, len(images))
	for i, img := range images {
		out[i] = img.Path
	}
	return out
}

func TestRepository(t *testing.T) {
	db := openTestDB(t)
	sys := prompts.New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	first, err := sys.Create(ctx, newCommand("设计", "a.png", "b.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := sys.Create(ctx, newCommand("教育"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("create rejects missing fields", func(t *testing.T) {
		cmd := newCommand("x")
		cmd.Author = ""
		if _, err := sys.Create(ctx, cmd); !errors.Is(err, prompts.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("find orders primary first", func(t *testing.T) {
		p, err := sys.Find(ctx, first)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		got := paths(p.Images)
		if len(got) != 2 || got[0] != "a.png" || !p.Images[0].IsPrimary {
			t.Errorf("images = %v, want a.png primary first", got)
		}
	})

	t.Run("list newest first with filter", func(t *testing.T) {
		all, err := sys.List(ctx, prompts.Filters{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(all) != 2 || all[0].ID != second {
			t.Errorf("list order = %v", all)
		}
		if all[0].Images == nil {
			t.Error("prompt without images should have an empty list")
		}

		category := "设计"
		filtered, err := sys.List(ctx, prompts.Filters{Category: &category})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(filtered) != 1 || filtered[0].ID != first {
			t.Errorf("filtered = %v", filtered)
		}
	})

	t.Run("add images promotes first new image", func(t *testing.T) {
		if err := sys.AddImages(ctx, first, prompts.AddImagesCommand{Images: []string{"c.png", "d.png"}}); err != nil {
			t.Fatalf("add images: %v", err)
		}
		images, err := sys.Images(ctx, first)
		if err != nil {
			t.Fatalf("images: %v", err)
		}
		got := paths(images)
		want := []string{"c.png", "a.png", "b.png", "d.png"}
		if len(got) != len(want) {
			t.Fatalf("images = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("images = %v, want %v", got, want)
			}
		}
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		err := sys.Update(ctx, first, prompts.UpdateCommand{Headline: prompts.Some("Updated")})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		p, err := sys.Find(ctx, first)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if p.Headline != "Updated" || p.Author != "Tester" || len(p.Images) != 4 {
			t.Errorf("prompt = %+v", p)
		}
	})

	t.Run("update replaces image set", func(t *testing.T) {
		err := sys.Update(ctx, first, prompts.UpdateCommand{Images: prompts.Some([]string{"z.png"})})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		images, err := sys.Images(ctx, first)
		if err != nil {
			t.Fatalf("images: %v", err)
		}
		if len(images) != 1 || images[0].Path != "z.png" || !images[0].IsPrimary {
			t.Errorf("images = %+v", images)
		}

		err = sys.Update(ctx, first, prompts.UpdateCommand{Images: prompts.Some([]string{})})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		p, err := sys.Find(ctx, first)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(p.Images) != 0 || p.PrimaryImageID != nil {
			t.Errorf("images = %+v primary = %v", p.Images, p.PrimaryImageID)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		const missing = 999999
		if _, err := sys.Find(ctx, missing); !errors.Is(err, prompts.ErrNotFound) {
			t.Errorf("find err = %v", err)
		}
		if err := sys.Update(ctx, missing, prompts.UpdateCommand{}); !errors.Is(err, prompts.ErrNotFound) {
			t.Errorf("update err = %v", err)
		}
		if err := sys.AddImages(ctx, missing, prompts.AddImagesCommand{Images: []string{"a"}}); !errors.Is(err, prompts.ErrNotFound) {
			t.Errorf("add images err = %v", err)
		}
		if _, err := sys.Images(ctx, missing); !errors.Is(err, prompts.ErrNotFound) {
			t.Errorf("images err = %v", err)
		}
		if err := sys.Delete(ctx, missing); !errors.Is(err, prompts.ErrNotFound) {
			t.Errorf("delete err = %v", err)
		}
	})

	t.Run("delete removes images", func(t *testing.T) {
		if err := sys.AddImages(ctx, second, prompts.AddImagesCommand{Images: []string{"q.png"}}); err != nil {
			t.Fatalf("add images: %v", err)
		}
		if err := sys.Delete(ctx, second); err != nil {
			t.Fatalf("delete: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT count(*) FROM prompt_images WHERE prompt_id = $1", second).Scan(&count); err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Errorf("orphan images = %d", count)
		}
		if _, err := sys.Find(ctx, second); !errors.Is(err, prompts.ErrNotFound) {
			t.Errorf("find after delete err = %v", err)
		}
	})
}

func TestRepositoryCategories(t *testing.T) {
	db := openTestDB(t)
	sys := prompts.New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	for _, category := range []string{"b", "a", "B", "a", "A"} {
		if _, err := sys.Create(ctx, newCommand(category)); err != nil {
			t.Fatalf("create %q: %v", category, err)
		}
	}

	t.Run("distinct in byte order", func(t *testing.T) {
		categories, err := sys.Categories(ctx)
		if err != nil {
			t.Fatalf("categories: %v", err)
		}
		want := []string{"A", "B", "a", "b"}
		if !slices.Equal(categories, want) {
			t.Errorf("categories = %v, want %v", categories, want)
		}
	})

	t.Run("filter is exact and case-sensitive", func(t *testing.T) {
		category := "a"
		filtered, err := sys.List(ctx, prompts.Filters{Category: &category})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(filtered) != 2 {
			t.Fatalf("filtered = %d prompts, want 2", len(filtered))
		}
		for _, p := range filtered {
			if p.Category != "a" {
				t.Errorf("filter returned category %q", p.Category)
			}
		}
	})
}

func TestRepositoryCreateBatch(t *testing.T) {
	db := openTestDB(t)
	sys := prompts.New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	count := func() int {
		t.Helper()
		var n int
		if err := db.QueryRow("SELECT count(*) FROM prompts").Scan(&n); err != nil {
			t.Fatalf("count: %v", err)
		}
		return n
	}

	t.Run("invalid command rejects the batch", func(t *testing.T) {
		bad := newCommand("x")
		bad.Model = ""
		_, err := sys.CreateBatch(ctx, []prompts.CreateCommand{newCommand("x"), bad})
		if !errors.Is(err, prompts.ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
		if n := count(); n != 0 {
			t.Errorf("prompts = %d, want 0", n)
		}
	})

	t.Run("insert failure rolls back earlier prompts", func(t *testing.T) {
		bad := newCommand("x", "a.png")
		bad.Headline = "nul\x00byte"
		_, err := sys.CreateBatch(ctx, []prompts.CreateCommand{newCommand("x", "ok.png"), bad})
		if err == nil {
			t.Fatal("expected insert error")
		}
		if n := count(); n != 0 {
			t.Errorf("prompts = %d, want 0 after rollback", n)
		}
	})

	t.Run("stores every prompt", func(t *testing.T) {
		ids, err := sys.CreateBatch(ctx, []prompts.CreateCommand{
			newCommand("x", "a.png"),
			newCommand("y"),
		})
		if err != nil {
			t.Fatalf("create batch: %v", err)
		}
		if len(ids) != 2 || ids[0] == ids[1] {
			t.Errorf("ids = %v", ids)
		}
		if n := count(); n != 2 {
			t.Errorf("prompts = %d, want 2", n)
		}
	})
}

func TestPrimaryImageOwnership(t *testing.T) {
	db := openTestDB(t)
	sys := prompts.New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	owner, err := sys.Create(ctx, newCommand("x", "mine.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := sys.Create(ctx, newCommand("x"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	p, err := sys.Find(ctx, owner)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if p.PrimaryImageID == nil {
		t.Fatal("owner has no primary image")
	}

	_, err = db.Exec("UPDATE prompts SET primary_image_id = $1 WHERE id = $2", *p.PrimaryImageID, other)

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		t.Fatalf("err = %v, want foreign key violation", err)
	}
	if !strings.Contains(pgErr.ConstraintName, "primary_image") {
		t.Errorf("constraint = %q", pgErr.ConstraintName)
	}
}
