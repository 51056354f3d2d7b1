package query_test

import (
	"testing"

	"github.com/JaimeStill/promptflow/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.
		NewProjectionMap("public", "prompts", "p").
		Project("id", "ID").
		Project("category", "Category").
		Project("created_at", "CreatedAt")
}

func TestProjectionColumns(t *testing.T) {
	p := testProjection()

	if got := p.Columns(); got != "p.id, p.category, p.created_at" {
		t.Errorf("Columns() = %q", got)
	}
	if got := p.Column("Category"); got != "p.category" {
		t.Errorf("Column(Category) = %q, want p.category", got)
	}
	if got := p.Column("unmapped"); got != "unmapped" {
		t.Errorf("Column(unmapped) = %q, want passthrough", got)
	}
	if got := p.From(); got != "public.prompts p" {
		t.Errorf("From() = %q", got)
	}
}

func TestProjectionJoin(t *testing.T) {
	p := query.
		NewProjectionMap("public", "prompts", "p").
		Project("id", "ID").
		Join("public", "prompt_images", "i", "LEFT JOIN", "i.id = p.primary_image_id").
		Project("image_path", "PrimaryImage")

	if got := p.Columns(); got != "p.id, i.image_path" {
		t.Errorf("Columns() = %q", got)
	}

	want := "public.prompts p LEFT JOIN public.prompt_images i ON i.id = p.primary_image_id"
	if got := p.From(); got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
	if got := p.Table(); got != "public.prompts p" {
		t.Errorf("Table() = %q", got)
	}
}

func TestBuild(t *testing.T) {
	sort := []query.SortField{
		{Field: "CreatedAt", Descending: true},
		{Field: "ID", Descending: true},
	}

	t.Run("no conditions", func(t *testing.T) {
		sql, args := query.NewBuilder(testProjection(), sort...).Build()

		want := "SELECT p.id, p.category, p.created_at FROM public.prompts p ORDER BY p.created_at DESC, p.id DESC"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want none", args)
		}
	})

	t.Run("nil filter is skipped", func(t *testing.T) {
		var category *string
		sql, args := query.NewBuilder(testProjection()).WhereEquals("Category", category).Build()

		want := "SELECT p.id, p.category, p.created_at FROM public.prompts p"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want none", args)
		}
	})

	t.Run("equality conditions are numbered", func(t *testing.T) {
		category := "教育"
		sql, args := query.
			NewBuilder(testProjection(), sort...).
			WhereEquals("Category", &category).
			WhereEquals("ID", 4).
			Build()

		want := "SELECT p.id, p.category, p.created_at FROM public.prompts p WHERE p.category = $1 AND p.id = $2 ORDER BY p.created_at DESC, p.id DESC"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 2 {
			t.Fatalf("args length = %d, want 2", len(args))
		}
		if got, ok := args[0].(*string); !ok || *got != category {
			t.Errorf("args[0] = %v, want %q", args[0], category)
		}
		if args[1] != 4 {
			t.Errorf("args[1] = %v, want 4", args[1])
		}
	})
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", int64(12))

	want := "SELECT p.id, p.category, p.created_at FROM public.prompts p WHERE p.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != int64(12) {
		t.Errorf("args = %v, want [12]", args)
	}
}

func TestWhereAny(t *testing.T) {
	images := query.
		NewProjectionMap("public", "prompt_images", "i").
		Project("id", "ID").
		Project("prompt_id", "PromptID").
		Join("public", "prompts", "p", "JOIN", "p.id = i.prompt_id").
		Project("primary_image_id", "PrimaryImageID")

	t.Run("slice", func(t *testing.T) {
		ids := []int64{3, 5}
		sql, args := query.
			NewBuilder(images, query.SortField{Field: "ID"}).
			WhereAny("PromptID", ids).
			Build()

		want := "SELECT i.id, i.prompt_id, p.primary_image_id FROM public.prompt_images i JOIN public.prompts p ON p.id = i.prompt_id WHERE i.prompt_id = ANY($1) ORDER BY i.id ASC"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 1 {
			t.Fatalf("args length = %d, want 1", len(args))
		}
		if got, ok := args[0].([]int64); !ok || len(got) != 2 {
			t.Errorf("args[0] = %v, want %v", args[0], ids)
		}
	})

	t.Run("nil slice is skipped", func(t *testing.T) {
		var ids []int64
		_, args := query.NewBuilder(images).WhereAny("PromptID", ids).Build()
		if len(args) != 0 {
			t.Errorf("args = %v, want none", args)
		}
	})
}
