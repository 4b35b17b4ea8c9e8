package render

import (
	"github.com/blimu-dev/schema-ir/pkg/ir"
	"github.com/blimu-dev/schema-ir/pkg/toposort"
)

// Report is the data handed to renderers and templates: the model plus the
// declaration cycles found in it.
type Report struct {
	*ir.Model
	Cycles [][]string
}

// NewReport builds the Report of m.
func NewReport(m *ir.Model) *Report {
	return &Report{Model: m, Cycles: toposort.Cycles(m.ReferenceTypes)}
}

// document is the serialized shape of a Report, shared by the JSON and YAML formats
type document struct {
	Version      string         `json:"version" yaml:"version"`
	Declarations []declaration  `json:"declarations" yaml:"declarations"`
	Operations   []operationDoc `json:"operations" yaml:"operations"`
	Cycles       [][]string     `json:"cycles,omitempty" yaml:"cycles,omitempty"`
}

type declaration struct {
	Name        string         `json:"name" yaml:"name"`
	Ref         string         `json:"ref" yaml:"ref"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Type        map[string]any `json:"type" yaml:"type"`
}

type operationDoc struct {
	OperationID string        `json:"operationId" yaml:"operationId"`
	Method      string        `json:"method" yaml:"method"`
	Path        string        `json:"path" yaml:"path"`
	Summary     string        `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  bool          `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Tags        []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Params      []paramDoc    `json:"params" yaml:"params"`
	Responses   []responseDoc `json:"responses,omitempty" yaml:"responses,omitempty"`
}

type paramDoc struct {
	Name        string         `json:"name" yaml:"name"`
	In          string         `json:"in" yaml:"in"`
	Required    bool           `json:"required" yaml:"required"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Type        map[string]any `json:"type" yaml:"type"`
}

type responseDoc struct {
	Status      string       `json:"status" yaml:"status"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Headers     []typedEntry `json:"headers,omitempty" yaml:"headers,omitempty"`
	Content     []typedEntry `json:"content,omitempty" yaml:"content,omitempty"`
}

// typedEntry is a header (keyed by name) or a body alternative (keyed by media type)
type typedEntry struct {
	Name string         `json:"name" yaml:"name"`
	Type map[string]any `json:"type" yaml:"type"`
}

func newDocument(r *Report) document {
	doc := document{
		Version:      r.Version,
		Declarations: make([]declaration, 0, len(r.ReferenceTypes)),
		Operations:   make([]operationDoc, 0, len(r.Operations)),
		Cycles:       r.Cycles,
	}
	for _, rt := range r.ReferenceTypes {
		doc.Declarations = append(doc.Declarations, declaration{
			Name:        rt.Name,
			Ref:         rt.Ref,
			Description: rt.Description,
			Type:        ir.Encode(rt.Type),
		})
	}
	for _, op := range r.Operations {
		od := operationDoc{
			OperationID: op.OperationID,
			Method:      string(op.Method),
			Path:        op.Path,
			Summary:     op.Summary,
			Description: op.Description,
			Deprecated:  op.Deprecated,
			Tags:        op.Tags,
			Params:      make([]paramDoc, 0, len(op.Params)),
		}
		for _, p := range op.Params {
			od.Params = append(od.Params, paramDoc{
				Name:        p.Name,
				In:          string(p.Kind),
				Required:    p.Required,
				Description: p.Description,
				Type:        ir.Encode(p.Type),
			})
		}
		for _, resp := range op.Responses {
			rd := responseDoc{Status: resp.Status.String(), Description: resp.Description}
			for _, h := range resp.Headers {
				rd.Headers = append(rd.Headers, typedEntry{Name: h.Name, Type: ir.Encode(h.Type)})
			}
			for _, b := range resp.BodyAlternatives {
				rd.Content = append(rd.Content, typedEntry{Name: b.MimeType, Type: ir.Encode(b.Type)})
			}
			od.Responses = append(od.Responses, rd)
		}
		doc.Operations = append(doc.Operations, od)
	}
	return doc
}
