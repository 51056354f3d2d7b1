// Package uploads stores image files submitted through multipart forms and
// reports the public paths clients attach to prompts.
package uploads

import (
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL path under which stored images are served.
const PublicPrefix = "/static/images/"

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
}

// Result reports one stored file.
type Result struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Path         string `json:"path"`
}

// Response is the body returned for a successful upload.
type Response struct {
	Message string   `json:"message"`
	Files   []Result `json:"files"`
}

// Allowed reports whether name carries an accepted image extension.
// Matching is case-insensitive.
func Allowed(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}
