package prompts

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	return v
}

// Validate reports the first missing or blank required field.
func (c CreateCommand) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return invalid("Missing required field: " + verrs[0].Field())
	}
	return err
}

// Validate rejects an update that carries no fields or blanks a required field.
func (c UpdateCommand) Validate() error {
	if c.empty() {
		return invalid("No fields to update")
	}

	for _, f := range c.requiredFields() {
		if f.value.Set && strings.TrimSpace(f.value.Value) == "" {
			return invalid("Field cannot be empty: " + f.name)
		}
	}
	return nil
}

// Validate rejects a missing or empty image list.
func (c AddImagesCommand) Validate() error {
	if len(c.Images) == 0 {
		return invalid("Missing required field: images")
	}
	return nil
}

type namedField struct {
	name  string
	value Optional[string]
}

func (c UpdateCommand) requiredFields() []namedField {
	return []namedField{
		{"model", c.Model},
		{"mode", c.Mode},
		{"category", c.Category},
		{"author", c.Author},
		{"headline", c.Headline},
		{"description", c.Description},
		{"prompt_text", c.PromptText},
	}
}

func (c UpdateCommand) empty() bool {
	for _, f := range c.requiredFields() {
		if f.value.Set {
			return false
		}
	}
	return !c.EffectImage.Set && !c.Images.Set
}
