package api

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/promptflow/internal/infrastructure"
	"github.com/JaimeStill/promptflow/pkg/handlers"
	"github.com/JaimeStill/promptflow/pkg/middleware"
	"github.com/JaimeStill/promptflow/pkg/module"
	"github.com/JaimeStill/promptflow/pkg/routes"
	"github.com/JaimeStill/promptflow/pkg/storage"
)

// StaticPrefix is the mount point for stored image downloads.
const StaticPrefix = "/static"

type imageHandler struct {
	store  storage.System
	logger *slog.Logger
}

// NewStaticModule creates the module serving uploaded images from storage
// at /static/images/{name}.
func NewStaticModule(infra *infrastructure.Infrastructure) *module.Module {
	logger := infra.Logger.With("module", "static")
	h := &imageHandler{
		store:  infra.Storage,
		logger: logger.With("handler", "images"),
	}

	mux := http.NewServeMux()
	routes.Register(mux, h.routes())

	m := module.New(StaticPrefix, mux)
	m.Use(middleware.Logger(logger))
	return m
}

func (h *imageHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/images",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{name}", Handler: h.download},
		},
	}
}

func (h *imageHandler) download(w http.ResponseWriter, r *http.Request) {
	obj, err := h.store.Download(r.Context(), r.PathValue("name"))
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if obj.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	if r.Method != http.MethodHead {
		io.Copy(w, obj.Body)
	}
}
