package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/blimu-dev/schema-ir/pkg/config"
	"github.com/blimu-dev/schema-ir/pkg/openapi"
	"github.com/blimu-dev/schema-ir/pkg/parser"
	"github.com/blimu-dev/schema-ir/pkg/render"
	"github.com/blimu-dev/schema-ir/pkg/toposort"
)

// FallbackParams describe a single output when no config file is given
type FallbackParams struct {
	Spec        string
	Format      string
	Template    string
	Out         string
	IncludeTags []string
	ExcludeTags []string
	PruneUnused bool
}

type RunParseParams struct {
	ConfigPath string
	Validate   bool
	Verbose    bool
	KeepOrder  bool
	Fallback   FallbackParams
}

// NewLogger returns the diagnostics logger used by every command
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ResolveConfig builds the run configuration from a config file, or from the
// fallback flags when no file is given. Flags set on the command line win
// over the file.
func ResolveConfig(p RunParseParams) (*config.Config, error) {
	var cfg *config.Config
	if p.ConfigPath == "" {
		if p.Fallback.Spec == "" {
			return nil, errors.New("either --config or --input must be provided")
		}
		cfg = &config.Config{
			Spec: p.Fallback.Spec,
			Outputs: []config.Output{{
				Format:      p.Fallback.Format,
				Template:    p.Fallback.Template,
				Out:         p.Fallback.Out,
				IncludeTags: p.Fallback.IncludeTags,
				ExcludeTags: p.Fallback.ExcludeTags,
				PruneUnused: p.Fallback.PruneUnused,
			}},
		}
	} else {
		var err error
		cfg, err = config.Load(p.ConfigPath)
		if err != nil {
			return nil, err
		}
		if p.Fallback.Spec != "" {
			cfg.Spec = p.Fallback.Spec
		}
	}
	cfg.Validate = cfg.Validate || p.Validate
	cfg.Verbose = cfg.Verbose || p.Verbose
	cfg.KeepOrder = cfg.KeepOrder || p.KeepOrder
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunParse parses the document and renders the configured outputs
func RunParse(ctx context.Context, p RunParseParams, stdout, stderr io.Writer) error {
	cfg, err := ResolveConfig(p)
	if err != nil {
		return err
	}
	logger := NewLogger(stderr, cfg.Verbose)
	svc := render.NewService(render.WithLogger(logger), render.WithStdout(stdout))
	return svc.Run(ctx, cfg)
}

// RunValidate validates the document against the OpenAPI rules
func RunValidate(ctx context.Context, input string, stdout io.Writer) error {
	if err := openapi.ValidateDocument(ctx, input); err != nil {
		return err
	}
	_, err := fmt.Fprintf(stdout, "%s: valid\n", input)
	return err
}

// RunCycles prints each group of mutually referencing declarations on its own line
func RunCycles(ctx context.Context, input string, verbose bool, stdout, stderr io.Writer) error {
	doc, err := openapi.LoadDocument(ctx, input)
	if err != nil {
		return err
	}
	m, err := parser.Parse(doc, parser.WithLogger(NewLogger(stderr, verbose)))
	if err != nil {
		return err
	}
	cycles := toposort.Cycles(m.ReferenceTypes)
	if len(cycles) == 0 {
		_, err := fmt.Fprintln(stdout, "no cycles")
		return err
	}
	for _, group := range cycles {
		if _, err := fmt.Fprintln(stdout, strings.Join(group, " -> ")); err != nil {
			return err
		}
	}
	return nil
}
