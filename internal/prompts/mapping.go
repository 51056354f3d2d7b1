package prompts

import (
	"cmp"
	"net/url"
	"slices"

	"github.com/JaimeStill/promptflow/pkg/query"
	"github.com/JaimeStill/promptflow/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("model", "Model").
	Project("mode", "Mode").
	Project("category", "Category").
	Project("author", "Author").
	Project("headline", "Headline").
	Project("description", "Description").
	Project("prompt_text", "PromptText").
	Project("effect_image", "EffectImage").
	Project("primary_image_id", "PrimaryImageID").
	Project("created_at", "CreatedAt")

var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID", Descending: true},
}

var imageProjection = query.
	NewProjectionMap("public", "prompt_images", "i").
	Project("id", "ID").
	Project("prompt_id", "PromptID").
	Project("image_path", "Path").
	Project("created_at", "CreatedAt").
	Join("public", "prompts", "p", "JOIN", "p.id = i.prompt_id").
	Project("primary_image_id", "PrimaryImageID")

var imageSort = []query.SortField{
	{Field: "CreatedAt"},
	{Field: "ID"},
}

// Filters contains optional filtering criteria for prompt queries.
// Category uses case-sensitive exact matching.
type Filters struct {
	Category *string `json:"category,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Category", f.Category)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// An empty category is treated as no filter.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.Model,
		&p.Mode,
		&p.Category,
		&p.Author,
		&p.Headline,
		&p.Description,
		&p.PromptText,
		&p.EffectImage,
		&p.PrimaryImageID,
		&p.CreatedAt,
	)
	return p, err
}

func scanImage(s repository.Scanner) (Image, error) {
	var (
		img     Image
		primary *int64
	)
	err := s.Scan(
		&img.ID,
		&img.PromptID,
		&img.Path,
		&img.CreatedAt,
		&primary,
	)
	img.IsPrimary = primary != nil && *primary == img.ID
	return img, err
}

// orderImages puts the primary image first and the rest by ascending
// created_at, then id.
func orderImages(images []Image) {
	slices.SortStableFunc(images, func(a, b Image) int {
		if a.IsPrimary != b.IsPrimary {
			if a.IsPrimary {
				return -1
			}
			return 1
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// attachImages groups images by prompt and assigns them in display order.
func attachImages(prompts []Prompt, images []Image) {
	byPrompt := make(map[int64][]Image, len(prompts))
	for _, img := range images {
		byPrompt[img.PromptID] = append(byPrompt[img.PromptID], img)
	}

	for i := range prompts {
		imgs := byPrompt[prompts[i].ID]
		if imgs == nil {
			imgs = []Image{}
		}
		orderImages(imgs)
		prompts[i].Images = imgs
	}
}
