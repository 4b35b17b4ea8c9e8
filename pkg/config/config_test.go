package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema-ir.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
spec: api/openapi.yaml
validate: true
outputs:
  - format: summary
  - format: template
    template: report.tmpl
    out: build/report.md
    includeTags: [pets]
    pruneUnused: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.Spec))
	assert.True(t, cfg.Validate)
	assert.False(t, cfg.Verbose)
	require.Len(t, cfg.Outputs, 2)

	assert.Equal(t, FormatSummary, cfg.Outputs[0].Format)
	assert.True(t, cfg.Outputs[0].ToStdout())

	tmpl := cfg.Outputs[1]
	assert.True(t, filepath.IsAbs(tmpl.Template))
	assert.True(t, filepath.IsAbs(tmpl.Out))
	assert.Equal(t, []string{"pets"}, tmpl.IncludeTags)
	assert.True(t, tmpl.PruneUnused)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "spec: https://example.com/openapi.yaml\n"))
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/openapi.yaml", cfg.Spec, "URLs are kept as is")
	require.Len(t, cfg.Outputs, 1)
	assert.Equal(t, FormatJSON, cfg.Outputs[0].Format)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "missing spec", content: "outputs: [{format: json}]\n", want: "config.spec is required"},
		{name: "unknown format", content: "spec: a.yaml\noutputs: [{format: xml}]\n", want: `unknown format "xml"`},
		{name: "template without file", content: "spec: a.yaml\noutputs: [{format: template}]\n", want: "requires template"},
		{name: "bad yaml", content: "spec: [\n", want: "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCheck_FillsDefaultFormat(t *testing.T) {
	cfg := Config{Spec: "a.yaml", Outputs: []Output{{Out: "-"}}}
	require.NoError(t, cfg.Check())
	assert.Equal(t, FormatJSON, cfg.Outputs[0].Format)
	assert.True(t, cfg.Outputs[0].ToStdout())
}
