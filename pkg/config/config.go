package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatSummary  = "summary"
	FormatTemplate = "template"
)

// Formats lists the known output formats
var Formats = []string{FormatJSON, FormatYAML, FormatSummary, FormatTemplate}

// Config represents the complete configuration for a parse run
type Config struct {
	Spec string `yaml:"spec"`
	// Validate checks the document against the OpenAPI rules before parsing
	Validate bool `yaml:"validate"`
	// Verbose enables debug diagnostics
	Verbose bool `yaml:"verbose"`
	// KeepOrder leaves declarations in document order instead of sorting them
	KeepOrder bool     `yaml:"keepOrder"`
	Outputs   []Output `yaml:"outputs"`
}

// Output represents one rendering of the parsed model
type Output struct {
	Format string `yaml:"format"`
	// Template is the text/template file used by the template format
	Template string `yaml:"template"`
	// Out is the destination file. Empty or "-" writes to stdout.
	Out         string   `yaml:"out"`
	IncludeTags []string `yaml:"includeTags"`
	ExcludeTags []string `yaml:"excludeTags"`
	// PruneUnused drops declarations no remaining operation references
	PruneUnused bool `yaml:"pruneUnused"`
}

// ToStdout reports whether the output is written to standard output.
func (o *Output) ToStdout() bool {
	return o.Out == "" || o.Out == "-"
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.Outputs) == 0 {
		cfg.Outputs = []Output{{Format: FormatJSON}}
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	cfg.absolutize()
	return &cfg, nil
}

// Check validates required fields and known formats
func (c *Config) Check() error {
	if c.Spec == "" {
		return errors.New("config.spec is required")
	}
	for i := range c.Outputs {
		o := &c.Outputs[i]
		if o.Format == "" {
			o.Format = FormatJSON
		}
		if !slices.Contains(Formats, o.Format) {
			return fmt.Errorf("outputs[%d]: unknown format %q (want one of %v)", i, o.Format, Formats)
		}
		if o.Format == FormatTemplate && o.Template == "" {
			return fmt.Errorf("outputs[%d]: format %q requires template", i, o.Format)
		}
	}
	return nil
}

func (c *Config) absolutize() {
	// Do not absolutize when spec is an HTTP(S) URL
	if !isURL(c.Spec) {
		c.Spec = abs(c.Spec)
	}
	for i := range c.Outputs {
		o := &c.Outputs[i]
		if !o.ToStdout() {
			o.Out = abs(o.Out)
		}
		if o.Template != "" {
			o.Template = abs(o.Template)
		}
	}
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	a, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return a
}
