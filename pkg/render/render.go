// Package render writes parsed models in the supported output formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/blimu-dev/schema-ir/pkg/config"
	"gopkg.in/yaml.v3"
)

// Renderer defines the interface for output formats
type Renderer interface {
	// Render writes the report for the given output configuration
	Render(w io.Writer, out config.Output, r *Report) error
	// GetType returns the format identifier (e.g., "json")
	GetType() string
}

// Registry manages available renderers
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates an empty renderer registry
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// NewDefaultRegistry creates a registry with every built-in format
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(JSONRenderer{})
	r.Register(YAMLRenderer{})
	r.Register(SummaryRenderer{})
	r.Register(TemplateRenderer{})
	return r
}

// Register adds a renderer to the registry
func (r *Registry) Register(rn Renderer) {
	r.renderers[rn.GetType()] = rn
}

// Get retrieves a renderer by format
func (r *Registry) Get(format string) (Renderer, bool) {
	rn, ok := r.renderers[format]
	return rn, ok
}

// GetAvailableTypes returns all registered formats, sorted
func (r *Registry) GetAvailableTypes() []string {
	types := make([]string, 0, len(r.renderers))
	for t := range r.renderers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// JSONRenderer writes the report as indented JSON
type JSONRenderer struct{}

func (JSONRenderer) GetType() string { return config.FormatJSON }

func (JSONRenderer) Render(w io.Writer, _ config.Output, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDocument(r)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// YAMLRenderer writes the report as YAML
type YAMLRenderer struct{}

func (YAMLRenderer) GetType() string { return config.FormatYAML }

func (YAMLRenderer) Render(w io.Writer, _ config.Output, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(r)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
