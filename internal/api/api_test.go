package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/promptflow/internal/api"
	"github.com/JaimeStill/promptflow/internal/config"
	"github.com/JaimeStill/promptflow/internal/infrastructure"
	"github.com/JaimeStill/promptflow/pkg/module"
)

func setup(t *testing.T) (*module.Router, string) {
	t.Helper()
	t.Chdir(t.TempDir())

	dir := filepath.Join(t.TempDir(), "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg := &config.Config{}
	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = 1
	cfg.Storage.Directory = dir
	cfg.API.CORS.Enabled = true
	cfg.API.CORS.Origins = []string{"http://app.test"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	infra, err := infrastructure.NewWithWriter(cfg, io.Discard)
	if err != nil {
		t.Fatalf("infrastructure: %v", err)
	}

	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(apiModule)
	router.Mount(api.NewStaticModule(infra))
	return router, dir
}

func TestOpenAPISpec(t *testing.T) {
	router, _ := setup(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/openapi.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var spec struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title string `json:"title"`
		} `json:"info"`
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
		Paths      map[string]map[string]any `json:"paths"`
		Components struct {
			Schemas   map[string]any `json:"schemas"`
			Responses map[string]any `json:"responses"`
		} `json:"components"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&spec); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if spec.OpenAPI != "3.1.0" || spec.Info.Title != "PromptFlow API" {
		t.Errorf("header = %s %q", spec.OpenAPI, spec.Info.Title)
	}
	if len(spec.Servers) != 1 || spec.Servers[0].URL != "/api" {
		t.Errorf("servers = %+v", spec.Servers)
	}

	want := map[string][]string{
		"/prompts":             {"get", "post"},
		"/prompts/{id}":        {"get", "put", "delete"},
		"/prompts/{id}/images": {"get", "post"},
		"/categories":          {"get"},
		"/upload":              {"post"},
	}
	for path, methods := range want {
		item, ok := spec.Paths[path]
		if !ok {
			t.Errorf("missing path %s", path)
			continue
		}
		for _, m := range methods {
			if _, ok := item[m]; !ok {
				t.Errorf("missing %s %s", m, path)
			}
		}
	}

	for _, name := range []string{"Prompt", "CreatePrompt", "UploadResponse", "Error"} {
		if _, ok := spec.Components.Schemas[name]; !ok {
			t.Errorf("missing schema %s", name)
		}
	}

	if _, ok := spec.Components.Responses["PayloadTooLarge"]; !ok {
		t.Error("missing PayloadTooLarge response")
	}
	upload, _ := spec.Paths["/upload"]["post"].(map[string]any)
	statuses, _ := upload["responses"].(map[string]any)
	if _, ok := statuses["413"]; !ok {
		t.Errorf("upload responses = %v, want 413", statuses)
	}
}

func TestAPICORS(t *testing.T) {
	router, _ := setup(t)

	req := httptest.NewRequest("OPTIONS", "/api/prompts", nil)
	req.Header.Set("Origin", "http://app.test")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://app.test" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestAPIBadIDBeforeDatabase(t *testing.T) {
	router, _ := setup(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/prompts/abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestStaticImages(t *testing.T) {
	router, dir := setup(t)

	content := []byte("\x89PNG fake")
	if err := os.WriteFile(filepath.Join(dir, "a.png"), content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"existing", "/static/images/a.png", http.StatusOK},
		{"missing", "/static/images/b.png", http.StatusNotFound},
		{"unknown route", "/static/other/a.png", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("Content-Type = %q, want image/png", ct)
			}
			if !bytes.Equal(rec.Body.Bytes(), content) {
				t.Errorf("body = %q", rec.Body.Bytes())
			}
		})
	}
}

func TestUploadThenServe(t *testing.T) {
	router, _ := setup(t)

	var buf bytes.Buffer
	body := []byte("gif-bytes")
	mw := newMultipart(t, &buf, "image", "pic.gif", body)

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", mw)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Files []struct {
			Path string `json:"path"`
		} `json:"files"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(resp.Files))
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", resp.Files[0].Path, nil))
	if rec.Code != http.StatusOK || !bytes.Equal(rec.Body.Bytes(), body) {
		t.Errorf("serve %s: %d %q", resp.Files[0].Path, rec.Code, rec.Body.Bytes())
	}
}
