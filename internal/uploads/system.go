package uploads

import (
	"context"
	"mime/multipart"
)

// System defines the public contract for upload operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Save validates every file, then stores each under a generated name.
	// Either all files are stored or none are.
	Save(ctx context.Context, files []*multipart.FileHeader) ([]Result, error)
}
