// Package prompts manages prompt ideas and their ordered image sets.
package prompts

import (
	"bytes"
	"encoding/json"
	"time"
)

// Prompt is a stored prompt idea with its images in display order.
type Prompt struct {
	ID             int64
	Model          string
	Mode           string
	Category       string
	Author         string
	Headline       string
	Description    string
	PromptText     string
	EffectImage    *string
	PrimaryImageID *int64
	CreatedAt      time.Time
	Images         []Image
}

// Image is a stored image path attached to a prompt.
type Image struct {
	ID        int64
	PromptID  int64
	Path      string
	IsPrimary bool
	CreatedAt time.Time
}

// Optional marks whether a JSON field was present in a request body.
// A present null leaves Value at its zero value with Set true.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON records presence and decodes the value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// CreateCommand holds the fields for a new prompt. Field order is the order
// in which missing required fields are reported.
type CreateCommand struct {
	Model       string   `json:"model" validate:"notblank"`
	Mode        string   `json:"mode" validate:"notblank"`
	Category    string   `json:"category" validate:"notblank"`
	Author      string   `json:"author" validate:"notblank"`
	Headline    string   `json:"headline" validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	PromptText  string   `json:"prompt_text" validate:"notblank"`
	EffectImage *string  `json:"effect_image"`
	Images      []string `json:"images"`
}

// UpdateCommand holds a partial update. Only fields present in the request
// are written. A present Images list, even empty, replaces the image set.
type UpdateCommand struct {
	Model       Optional[string]   `json:"model"`
	Mode        Optional[string]   `json:"mode"`
	Category    Optional[string]   `json:"category"`
	Author      Optional[string]   `json:"author"`
	Headline    Optional[string]   `json:"headline"`
	Description Optional[string]   `json:"description"`
	PromptText  Optional[string]   `json:"prompt_text"`
	EffectImage Optional[*string]  `json:"effect_image"`
	Images      Optional[[]string] `json:"images"`
}

// AddImagesCommand appends images to an existing prompt.
type AddImagesCommand struct {
	Images []string `json:"images"`
}

// CreateResult is the response body for a created prompt.
type CreateResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
