package prompts

import (
	"net/http"
	"regexp"
	"strings"
	"time"
)

var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// View is the client representation of a prompt.
type View struct {
	ID          int64     `json:"id"`
	Model       string    `json:"model"`
	Mode        string    `json:"mode"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	Headline    string    `json:"headline"`
	Description string    `json:"description"`
	PromptText  string    `json:"prompt_text"`
	EffectImage string    `json:"effect_image"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImageView is the client representation of a prompt image.
type ImageView struct {
	Path      string `json:"path"`
	IsPrimary bool   `json:"is_primary"`
}

// Origin returns scheme://host for the request, or "" when the request
// carries no host. The scheme comes from the TLS state, then an http or https
// X-Forwarded-Proto, then defaults to http.
func Origin(r *http.Request) string {
	if r.Host == "" {
		return ""
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		first, _, _ := strings.Cut(proto, ",")
		switch p := strings.ToLower(strings.TrimSpace(first)); p {
		case "http", "https":
			scheme = p
		}
	}
	return scheme + "://" + r.Host
}

// ResolvePath returns path unchanged when it carries a URL scheme or origin
// is empty, otherwise joins it to origin with exactly one slash.
func ResolvePath(origin, path string) string {
	if origin == "" || schemePattern.MatchString(path) {
		return path
	}
	return strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(path, "/")
}

// NewView builds the client view of p with image paths resolved against origin.
// effect_image is the primary image when one exists, else the stored legacy value.
func NewView(p Prompt, origin string) View {
	v := View{
		ID:          p.ID,
		Model:       p.Model,
		Mode:        p.Mode,
		Category:    p.Category,
		Author:      p.Author,
		Headline:    p.Headline,
		Description: p.Description,
		PromptText:  p.PromptText,
		Images:      make([]string, 0, len(p.Images)),
		CreatedAt:   p.CreatedAt,
	}

	if p.EffectImage != nil {
		v.EffectImage = *p.EffectImage
	}

	for _, img := range p.Images {
		resolved := ResolvePath(origin, img.Path)
		if img.IsPrimary {
			v.EffectImage = resolved
		}
		v.Images = append(v.Images, resolved)
	}

	return v
}

// NewViews builds views for every prompt in order.
func NewViews(prompts []Prompt, origin string) []View {
	views := make([]View, len(prompts))
	for i, p := range prompts {
		views[i] = NewView(p, origin)
	}
	return views
}

// NewImageViews builds image views with paths resolved against origin.
func NewImageViews(images []Image, origin string) []ImageView {
	views := make([]ImageView, len(images))
	for i, img := range images {
		views[i] = ImageView{
			Path:      ResolvePath(origin, img.Path),
			IsPrimary: img.IsPrimary,
		}
	}
	return views
}
