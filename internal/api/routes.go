package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/promptflow/internal/config"
	"github.com/JaimeStill/promptflow/pkg/openapi"
	"github.com/JaimeStill/promptflow/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := []routes.Group{
		domain.Prompts.Handler().Routes(),
		domain.Uploads.Handler(runtime.MaxUploadSize).Routes(),
	}

	routes.Register(mux, groups...)

	spec, err := openapi.MarshalJSON(buildSpec(cfg, groups))
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}

// buildSpec describes every API route relative to the API base path.
func buildSpec(cfg *config.Config, groups []routes.Group) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	routes.Describe(spec, "", groups...)
	return spec
}
