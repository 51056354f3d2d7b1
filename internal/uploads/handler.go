package uploads

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"slices"

	"github.com/JaimeStill/promptflow/pkg/handlers"
	"github.com/JaimeStill/promptflow/pkg/openapi"
	"github.com/JaimeStill/promptflow/pkg/routes"
)

// Handler provides the HTTP endpoint for image uploads.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "uploads"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for the upload endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/upload",
		Tags:    []string{"Uploads"},
		Schemas: schemas,
		Responses: map[string]*openapi.Response{
			"PayloadTooLarge": openapi.ErrorResponse("Upload exceeds the configured size limit"),
		},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Upload, OpenAPI: uploadOp},
		},
	}
}

// Upload stores every file in a multipart form regardless of field name.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, invalid("No files uploaded"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	results, err := h.sys.Save(r.Context(), formFiles(r.MultipartForm))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Message: "Files uploaded successfully",
		Files:   results,
	})
}

// formFiles collects files from every field in field-name order, skipping
// parts submitted without a filename.
func formFiles(form *multipart.Form) []*multipart.FileHeader {
	fields := make([]string, 0, len(form.File))
	for name := range form.File {
		fields = append(fields, name)
	}
	slices.Sort(fields)

	var files []*multipart.FileHeader
	for _, name := range fields {
		for _, f := range form.File[name] {
			if f.Filename == "" {
				continue
			}
			files = append(files, f)
		}
	}
	return files
}

var uploadOp = &openapi.Operation{
	Summary:     "Upload images",
	Description: "Accepts files under any field name. Allowed extensions: png, jpg, jpeg, gif, webp, bmp, tiff. Bodies over the configured limit return 413.",
	RequestBody: &openapi.RequestBody{
		Required: true,
		Content: map[string]*openapi.MediaType{
			"multipart/form-data": {
				Schema: &openapi.Schema{
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"file": {Type: "string", Format: "binary"},
					},
				},
			},
		},
	},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Stored files", "UploadResponse"),
		400: openapi.ResponseRef("BadRequest"),
		413: openapi.ResponseRef("PayloadTooLarge"),
		500: openapi.ResponseRef("InternalError"),
	},
}

var schemas = map[string]*openapi.Schema{
	"UploadResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"filename":      {Type: "string"},
			"original_name": {Type: "string"},
			"path":          {Type: "string", Example: "/static/images/0b6f9f0e-8c1d-4a3e-9b52-3f1f2b8e7c11.png"},
		},
	},
	"UploadResponse": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"message": {Type: "string"},
			"files":   openapi.ArrayOf("UploadResult"),
		},
	},
}
