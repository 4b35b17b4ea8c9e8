// Package parser lowers a loaded OpenAPI document into the ir model.
package parser

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/blimu-dev/schema-ir/pkg/ir"
	"github.com/blimu-dev/schema-ir/pkg/openapi"
	"github.com/blimu-dev/schema-ir/pkg/toposort"
)

type options struct {
	logger      *slog.Logger
	sort        bool
	includeTags []string
	excludeTags []string
	pruneUnused bool
}

// Option configures Parse
type Option func(*options)

// WithLogger sets the logger used for diagnostics. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSort controls whether declarations are topologically sorted (default true).
// When disabled they keep document order.
func WithSort(enabled bool) Option {
	return func(o *options) { o.sort = enabled }
}

// WithTagFilter keeps only operations with a tag matching one of the include
// patterns and none of the exclude patterns. Patterns are regular expressions;
// untagged operations are matched as "misc".
func WithTagFilter(include, exclude []string) Option {
	return func(o *options) {
		o.includeTags = include
		o.excludeTags = exclude
	}
}

// WithPruneUnused drops declarations not reachable from any extracted operation.
func WithPruneUnused(enabled bool) Option {
	return func(o *options) { o.pruneUnused = enabled }
}

// Parse builds the model of doc. Any error is fatal and no partial model is returned.
func Parse(doc *openapi.Document, opts ...Option) (*ir.Model, error) {
	if doc == nil || doc.T == nil {
		return nil, errors.New("nil document")
	}
	o := options{
		logger: slog.New(slog.DiscardHandler),
		sort:   true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	include, exclude, err := compileTagFilters(o.includeTags, o.excludeTags)
	if err != nil {
		return nil, err
	}

	lowerer := NewLowerer(doc.Order, o.logger)
	decls, err := declarations(doc, lowerer)
	if err != nil {
		return nil, fmt.Errorf("declarations: %w", err)
	}

	ops, err := NewExtractor(doc, lowerer, o.logger, include, exclude).Extract()
	if err != nil {
		return nil, fmt.Errorf("operations: %w", err)
	}

	if o.pruneUnused {
		decls = pruneUnused(decls, ops)
	}
	if o.sort {
		decls = toposort.Sort(decls)
	}

	o.logger.Debug("parsed document",
		"version", doc.Version,
		"declarations", len(decls),
		"operations", len(ops))

	return &ir.Model{
		Version:        doc.Version,
		ReferenceTypes: decls,
		Operations:     ops,
	}, nil
}

// declarations lowers every schema container entry, in document order.
func declarations(doc *openapi.Document, lowerer *Lowerer) ([]ir.ReferenceType, error) {
	c := doc.T.Components
	if c == nil {
		return nil, nil
	}
	container := ContainerSchemas
	if doc.Swagger {
		container = ContainerDefinitions
	}

	names := openapi.Keys(doc.Order, "/components/schemas", c.Schemas)
	out := make([]ir.ReferenceType, 0, len(names))
	for _, name := range names {
		sr := c.Schemas[name]
		t, err := lowerer.Lower(sr, openapi.Pointer("components", "schemas", name))
		if err != nil {
			return nil, err
		}
		rt := ir.ReferenceType{
			Name: name,
			Ref:  container.Ref(name),
			Type: t,
		}
		if sr != nil && sr.Ref == "" && sr.Value != nil {
			rt.Description = sr.Value.Description
		}
		out = append(out, rt)
	}
	return out, nil
}

// pruneUnused keeps the declarations transitively referenced by ops.
func pruneUnused(decls []ir.ReferenceType, ops []ir.Operation) []ir.ReferenceType {
	byName := make(map[string]ir.ReferenceType, len(decls))
	for _, d := range decls {
		byName[d.Name] = d
	}

	used := map[string]bool{}
	var visit func(t ir.AnyType)
	visit = func(t ir.AnyType) {
		for _, n := range ir.CollectNamed(t) {
			if used[n.Name] {
				continue
			}
			used[n.Name] = true
			if d, ok := byName[n.Name]; ok {
				visit(d.Type)
			}
		}
	}
	for _, op := range ops {
		for _, p := range op.Params {
			visit(p.Type)
		}
		for _, r := range op.Responses {
			for _, h := range r.Headers {
				visit(h.Type)
			}
			for _, b := range r.BodyAlternatives {
				visit(b.Type)
			}
		}
	}

	out := make([]ir.ReferenceType, 0, len(used))
	for _, d := range decls {
		if used[d.Name] {
			out = append(out, d)
		}
	}
	return out
}
