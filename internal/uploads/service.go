package uploads

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/promptflow/pkg/storage"
)

const (
	saveLimit    = 4
	nameAttempts = 3
)

type service struct {
	storage storage.System
	logger  *slog.Logger
}

// New creates an upload system that writes through store.
func New(store storage.System, logger *slog.Logger) System {
	return &service{
		storage: store,
		logger:  logger.With("system", "uploads"),
	}
}

func (s *service) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, maxUploadSize)
}

func (s *service) Save(ctx context.Context, files []*multipart.FileHeader) ([]Result, error) {
	if len(files) == 0 {
		return nil, invalid("No files uploaded")
	}

	for _, f := range files {
		if !Allowed(f.Filename) {
			return nil, invalid("Invalid file type: " + f.Filename)
		}
	}

	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(saveLimit)

	for i, f := range files {
		g.Go(func() error {
			name, err := s.freeName(gctx, filepath.Ext(f.Filename))
			if err != nil {
				return err
			}
			if err := s.store(gctx, name, f); err != nil {
				return err
			}

			results[i] = Result{
				Filename:     name,
				OriginalName: f.Filename,
				Path:         PublicPrefix + name,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.discard(context.WithoutCancel(ctx), results)
		return nil, err
	}

	s.logger.Info("files uploaded", "count", len(results))
	return results, nil
}

// freeName generates a random key with ext that is not already in storage.
func (s *service) freeName(ctx context.Context, ext string) (string, error) {
	for range nameAttempts {
		name := uuid.NewString() + ext
		taken, err := s.storage.Exists(ctx, name)
		if err != nil {
			return "", fmt.Errorf("check %s: %w", name, err)
		}
		if !taken {
			return name, nil
		}
		s.logger.Warn("generated name already stored", "key", name)
	}
	return "", fmt.Errorf("no free name after %d attempts", nameAttempts)
}

func (s *service) store(ctx context.Context, name string, f *multipart.FileHeader) error {
	file, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Filename, err)
	}
	defer file.Close()

	contentType := detectContentType(f.Header.Get("Content-Type"), name)
	if err := s.storage.Upload(ctx, name, file, contentType); err != nil {
		return fmt.Errorf("store %s: %w", f.Filename, err)
	}
	return nil
}

// discard removes files already stored by a failed batch.
func (s *service) discard(ctx context.Context, results []Result) {
	for _, r := range results {
		if r.Filename == "" {
			continue
		}
		if err := s.storage.Delete(ctx, r.Filename); err != nil {
			s.logger.Warn("compensating delete failed", "key", r.Filename, "error", err)
		}
	}
}

func detectContentType(header, name string) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
