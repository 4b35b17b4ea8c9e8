package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/blimu-dev/schema-ir/pkg/config"
	"github.com/blimu-dev/schema-ir/pkg/openapi"
	"github.com/blimu-dev/schema-ir/pkg/parser"
)

// Service loads a document once and renders every configured output
type Service struct {
	registry *Registry
	logger   *slog.Logger
	stdout   io.Writer
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithLogger sets the logger passed down to the parser
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// WithStdout redirects outputs configured for standard output
func WithStdout(w io.Writer) ServiceOption {
	return func(s *Service) { s.stdout = w }
}

// WithRegistry replaces the default renderer registry
func WithRegistry(r *Registry) ServiceOption {
	return func(s *Service) { s.registry = r }
}

// NewService creates a new render service with the default renderers
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		registry: NewDefaultRegistry(),
		logger:   slog.New(slog.DiscardHandler),
		stdout:   os.Stdout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GetRegistry returns the renderer registry
func (s *Service) GetRegistry() *Registry {
	return s.registry
}

// Run renders every output of cfg.
func (s *Service) Run(ctx context.Context, cfg *config.Config) error {
	doc, err := openapi.LoadDocument(ctx, cfg.Spec, openapi.WithValidation(cfg.Validate))
	if err != nil {
		return err
	}
	s.logger.Debug("loaded document", "spec", cfg.Spec, "version", doc.Version, "swagger", doc.Swagger)

	for i, out := range cfg.Outputs {
		rn, ok := s.registry.Get(out.Format)
		if !ok {
			return fmt.Errorf("outputs[%d]: unsupported format: %s", i, out.Format)
		}

		m, err := parser.Parse(doc,
			parser.WithLogger(s.logger),
			parser.WithSort(!cfg.KeepOrder),
			parser.WithTagFilter(out.IncludeTags, out.ExcludeTags),
			parser.WithPruneUnused(out.PruneUnused),
		)
		if err != nil {
			return err
		}

		if err := s.write(out, rn, NewReport(m)); err != nil {
			return fmt.Errorf("outputs[%d]: %w", i, err)
		}
	}
	return nil
}

func (s *Service) write(out config.Output, rn Renderer, r *Report) error {
	if out.ToStdout() {
		return rn.Render(s.stdout, out, r)
	}

	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(out.Out), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(out.Out)
	if err != nil {
		return err
	}
	if err := rn.Render(f, out, r); err != nil {
		f.Close()
		return err
	}
	s.logger.Info("wrote output", "format", out.Format, "path", out.Out)
	return f.Close()
}
