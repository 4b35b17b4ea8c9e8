// Package schemair lowers OpenAPI 3 and Swagger 2.0 documents into a small,
// language neutral intermediate representation: named type declarations in
// dependency order plus the operations of the API.
//
// Quick Start:
//
//	import schemair "github.com/blimu-dev/schema-ir"
//
//	model, err := schemair.Parse(ctx, "./openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, decl := range model.ReferenceTypes {
//		fmt.Println(decl.Name, ir.Format(decl.Type))
//	}
//
// For finer control load the document with the openapi package and call
// parser.Parse directly.
package schemair

import (
	"context"

	"github.com/blimu-dev/schema-ir/pkg/config"
	"github.com/blimu-dev/schema-ir/pkg/ir"
	"github.com/blimu-dev/schema-ir/pkg/openapi"
	"github.com/blimu-dev/schema-ir/pkg/parser"
	"github.com/blimu-dev/schema-ir/pkg/render"
)

// Option configures Parse
type Option = parser.Option

// Re-exported parser options
var (
	WithLogger      = parser.WithLogger
	WithSort        = parser.WithSort
	WithTagFilter   = parser.WithTagFilter
	WithPruneUnused = parser.WithPruneUnused
)

// Parse loads the document at input (a file path or an HTTP(S) URL) and
// returns its model.
//
// Example:
//
//	model, err := schemair.Parse(ctx, "./openapi.yaml",
//		schemair.WithTagFilter([]string{"users"}, nil),
//		schemair.WithPruneUnused(true),
//	)
func Parse(ctx context.Context, input string, opts ...Option) (*ir.Model, error) {
	doc, err := openapi.LoadDocument(ctx, input)
	if err != nil {
		return nil, err
	}
	return parser.Parse(doc, opts...)
}

// ValidateSpec validates an OpenAPI specification file.
// This is useful for checking if a spec is valid before parsing it.
func ValidateSpec(ctx context.Context, input string) error {
	return openapi.ValidateDocument(ctx, input)
}

// RunFromConfig renders every output declared in a YAML configuration file.
func RunFromConfig(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return render.NewService().Run(ctx, cfg)
}
