package prompts_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/JaimeStill/promptflow/internal/prompts"
)

func TestOptionalDecoding(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{"absent", `{}`, false, nil},
		{"null", `{"effect_image":null}`, true, nil},
		{"value", `{"effect_image":"x.png"}`, true, ptr("x.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cmd prompts.UpdateCommand
			if err := json.Unmarshal([]byte(tt.body), &cmd); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if cmd.EffectImage.Set != tt.wantSet {
				t.Errorf("Set = %v, want %v", cmd.EffectImage.Set, tt.wantSet)
			}
			got := cmd.EffectImage.Value
			if (got == nil) != (tt.wantValue == nil) || (got != nil && *got != *tt.wantValue) {
				t.Errorf("Value = %v, want %v", got, tt.wantValue)
			}
		})
	}
}

func TestCreateCommandValidate(t *testing.T) {
	valid := func() prompts.CreateCommand {
		return prompts.CreateCommand{
			Model:       "m",
			Mode:        "o",
			Category:    "c",
			Author:      "a",
			Headline:    "h",
			Description: "d",
			PromptText:  "p",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*prompts.CreateCommand)
		wantErr string
	}{
		{"valid", func(*prompts.CreateCommand) {}, ""},
		{"valid without images", func(c *prompts.CreateCommand) { c.Images = nil }, ""},
		{"missing model", func(c *prompts.CreateCommand) { c.Model = "" }, "Missing required field: model"},
		{"blank author", func(c *prompts.CreateCommand) { c.Author = "   " }, "Missing required field: author"},
		{"first missing reported", func(c *prompts.CreateCommand) {
			c.Headline = ""
			c.PromptText = ""
		}, "Missing required field: headline"},
		{"missing prompt_text", func(c *prompts.CreateCommand) { c.PromptText = "" }, "Missing required field: prompt_text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid()
			tt.mutate(&cmd)

			err := cmd.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
			if !errors.Is(err, prompts.ErrValidation) {
				t.Error("error should wrap ErrValidation")
			}
		})
	}
}

func TestUpdateCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     prompts.UpdateCommand
		wantErr string
	}{
		{"empty", prompts.UpdateCommand{}, "No fields to update"},
		{"headline", prompts.UpdateCommand{Headline: prompts.Some("new")}, ""},
		{"effect image null", prompts.UpdateCommand{EffectImage: prompts.Some[*string](nil)}, ""},
		{"empty image list", prompts.UpdateCommand{Images: prompts.Some([]string{})}, ""},
		{"blank model", prompts.UpdateCommand{Model: prompts.Some(" ")}, "Field cannot be empty: model"},
		{"null category", prompts.UpdateCommand{Category: prompts.Optional[string]{Set: true}}, "Field cannot be empty: category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestAddImagesCommandValidate(t *testing.T) {
	if err := (prompts.AddImagesCommand{}).Validate(); err == nil {
		t.Error("expected error for missing images")
	}
	if err := (prompts.AddImagesCommand{Images: []string{"a.png"}}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", prompts.ErrNotFound, 404},
		{"validation", prompts.ErrValidation, 400},
		{"validation message", (prompts.AddImagesCommand{}).Validate(), 400},
		{"other", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prompts.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
