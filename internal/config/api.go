package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/promptflow/pkg/formatting"
	"github.com/JaimeStill/promptflow/pkg/middleware"
	"github.com/JaimeStill/promptflow/pkg/openapi"
)

const (
	EnvAPIBasePath      = "PROMPTFLOW_API_BASE_PATH"
	EnvAPIMaxUploadSize = "PROMPTFLOW_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PROMPTFLOW_CORS_ENABLED",
	Origins:          "PROMPTFLOW_CORS_ORIGINS",
	AllowedMethods:   "PROMPTFLOW_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PROMPTFLOW_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PROMPTFLOW_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PROMPTFLOW_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "PROMPTFLOW_OPENAPI_TITLE",
	Description: "PROMPTFLOW_OPENAPI_DESCRIPTION",
}

const defaultMaxUploadSize = 16 << 20

// APIConfig holds API routing, upload limits, CORS, and OpenAPI settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize formatting.Size       `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != 0 {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == 0 {
		c.MaxUploadSize = defaultMaxUploadSize
	}
	if !c.CORS.Enabled && len(c.CORS.Origins) == 0 {
		c.CORS.Enabled = true
		c.CORS.Origins = []string{"*"}
	}
}

func (c *APIConfig) loadEnv() error {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		if err := c.MaxUploadSize.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvAPIMaxUploadSize, err)
		}
	}
	return nil
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 {
		return fmt.Errorf("base_path must be a single-level path such as /api: %q", c.BasePath)
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	return nil
}
