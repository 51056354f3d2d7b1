package prompts

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/promptflow/pkg/handlers"
	"github.com/JaimeStill/promptflow/pkg/openapi"
	"github.com/JaimeStill/promptflow/pkg/routes"
)

// Handler provides HTTP endpoints for prompt operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "prompts"),
	}
}

// Routes returns the route groups for prompt and category endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:    []string{"Prompts"},
		Schemas: schemas,
		Children: []routes.Group{
			{
				Prefix: "/prompts",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: listOp},
					{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: createOp},
					{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: findOp},
					{Method: "PUT", Pattern: "/{id}", Handler: h.Update, OpenAPI: updateOp},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: deleteOp},
					{Method: "GET", Pattern: "/{id}/images", Handler: h.Images, OpenAPI: imagesOp},
					{Method: "POST", Pattern: "/{id}/images", Handler: h.AddImages, OpenAPI: addImagesOp},
				},
			},
			{
				Prefix: "/categories",
				Tags:   []string{"Categories"},
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.Categories, OpenAPI: categoriesOp},
				},
			},
		},
	}
}

// List returns prompt views newest first, optionally filtered by category.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.sys.List(r.Context(), FiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, NewViews(prompts, Origin(r)))
}

// Find returns a single prompt view by its integer path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	prompt, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, NewView(*prompt, Origin(r)))
}

// Create processes a JSON body to create a prompt with optional images.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if !h.decode(w, r, &cmd) {
		return
	}

	id, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, CreateResult{
		ID:      id,
		Message: "Prompt added successfully",
	})
}

// Update applies a partial JSON update to an existing prompt.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd UpdateCommand
	if !h.decode(w, r, &cmd) {
		return
	}

	if err := h.sys.Update(r.Context(), id, cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, "Prompt updated successfully")
}

// Delete removes a prompt and its images.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, "Prompt deleted successfully")
}

// Categories returns the distinct prompt categories in ascending order.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.sys.Categories(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, categories)
}

// AddImages appends images to a prompt; the first new image becomes primary.
func (h *Handler) AddImages(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd AddImagesCommand
	if !h.decode(w, r, &cmd) {
		return
	}

	if err := h.sys.AddImages(r.Context(), id, cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, "Images added successfully")
}

// Images returns a prompt's images, primary first.
func (h *Handler) Images(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	images, err := h.sys.Images(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, NewImageViews(images, Origin(r)))
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, invalid("Invalid prompt id"))
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, invalid("Invalid JSON body"))
		return false
	}
	return true
}

var (
	idParam = openapi.PathParam("id", "Prompt ID")

	listOp = &openapi.Operation{
		Summary:    "List prompts",
		Parameters: []*openapi.Parameter{openapi.QueryParam("category", "string", "Exact category match", false)},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseArrayJSON("Prompts, newest first", "Prompt"),
			500: openapi.ResponseRef("InternalError"),
		},
	}

	findOp = &openapi.Operation{
		Summary:    "Get a prompt",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Prompt", "Prompt"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}

	createOp = &openapi.Operation{
		Summary:     "Create a prompt",
		RequestBody: openapi.RequestBodyJSON("CreatePrompt", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created", "CreateResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	}

	updateOp = &openapi.Operation{
		Summary:     "Update a prompt",
		Description: "Writes only the fields present in the body. A present images list replaces the image set.",
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("UpdatePrompt", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated", "Message"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}

	deleteOp = &openapi.Operation{
		Summary:    "Delete a prompt",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Deleted", "Message"),
			404: openapi.ResponseRef("NotFound"),
		},
	}

	imagesOp = &openapi.Operation{
		Summary:    "List prompt images",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseArrayJSON("Images, primary first", "PromptImage"),
			404: openapi.ResponseRef("NotFound"),
		},
	}

	addImagesOp = &openapi.Operation{
		Summary:     "Add prompt images",
		Description: "The first new image becomes the primary image.",
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("AddImages", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Added", "Message"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}

	categoriesOp = &openapi.Operation{
		Summary: "List categories",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Distinct categories, ascending",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}},
				},
			},
		},
	}
)

var (
	str      = &openapi.Schema{Type: "string"}
	strArray = &openapi.Schema{Type: "array", Items: str}

	schemas = map[string]*openapi.Schema{
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "integer", Format: "int64"},
				"model":        str,
				"mode":         str,
				"category":     str,
				"author":       str,
				"headline":     str,
				"description":  str,
				"prompt_text":  str,
				"effect_image": {Type: "string", Description: "Primary image URL, or the legacy effect image"},
				"images":       {Type: "array", Items: str, Description: "Image URLs, primary first"},
				"created_at":   {Type: "string", Format: "date-time"},
			},
		},
		"PromptImage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"path":       str,
				"is_primary": {Type: "boolean"},
			},
		},
		"CreatePrompt": {
			Type:     "object",
			Required: []string{"model", "mode", "category", "author", "headline", "description", "prompt_text"},
			Properties: map[string]*openapi.Schema{
				"model":        str,
				"mode":         str,
				"category":     str,
				"author":       str,
				"headline":     str,
				"description":  str,
				"prompt_text":  str,
				"effect_image": str,
				"images":       strArray,
			},
		},
		"UpdatePrompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"model":        str,
				"mode":         str,
				"category":     str,
				"author":       str,
				"headline":     str,
				"description":  str,
				"prompt_text":  str,
				"effect_image": str,
				"images":       strArray,
			},
		},
		"AddImages": {
			Type:       "object",
			Required:   []string{"images"},
			Properties: map[string]*openapi.Schema{"images": strArray},
		},
		"CreateResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":      {Type: "integer", Format: "int64"},
				"message": str,
			},
		},
	}
)
