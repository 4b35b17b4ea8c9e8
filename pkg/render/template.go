package render

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/blimu-dev/schema-ir/pkg/config"
	"github.com/blimu-dev/schema-ir/pkg/ir"
	"github.com/blimu-dev/schema-ir/pkg/naming"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// FuncMap returns the functions available to report templates: the sprig
// library plus ir and naming helpers.
func FuncMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["format"] = ir.Format
	funcs["kind"] = func(t ir.AnyType) string {
		if t == nil {
			return ""
		}
		return string(t.Kind())
	}
	funcs["named"] = func(t ir.AnyType) []string {
		var out []string
		for _, n := range ir.CollectNamed(t) {
			out = append(out, n.Name)
		}
		return out
	}
	funcs["pascal"] = naming.Pascal
	funcs["camel"] = naming.Camel
	funcs["snake"] = naming.Snake
	funcs["kebab"] = naming.Kebab
	funcs["constant"] = naming.Constant
	return funcs
}

// SummaryRenderer writes a human readable overview of the report
type SummaryRenderer struct{}

func (SummaryRenderer) GetType() string { return config.FormatSummary }

func (SummaryRenderer) Render(w io.Writer, _ config.Output, r *Report) error {
	tmpl, err := template.New("summary.tmpl").Funcs(FuncMap()).ParseFS(templatesFS, "templates/summary.tmpl")
	if err != nil {
		return fmt.Errorf("parse summary template: %w", err)
	}
	if err := tmpl.Execute(w, r); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}

// TemplateRenderer executes a user supplied text/template against the report
type TemplateRenderer struct{}

func (TemplateRenderer) GetType() string { return config.FormatTemplate }

func (TemplateRenderer) Render(w io.Writer, out config.Output, r *Report) error {
	src, err := os.ReadFile(out.Template)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	tmpl, err := template.New(filepath.Base(out.Template)).Funcs(FuncMap()).Parse(string(src))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", out.Template, err)
	}
	if err := tmpl.Execute(w, r); err != nil {
		return fmt.Errorf("render template %s: %w", out.Template, err)
	}
	return nil
}
