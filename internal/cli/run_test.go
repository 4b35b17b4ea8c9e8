package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/blimu-dev/schema-ir/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfig_Fallback(t *testing.T) {
	cfg, err := ResolveConfig(RunParseParams{
		Verbose: true,
		Fallback: FallbackParams{
			Spec:        "testdata/cyclic.yaml",
			IncludeTags: []string{"pets"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "testdata/cyclic.yaml", cfg.Spec)
	assert.True(t, cfg.Verbose)
	require.Len(t, cfg.Outputs, 1)
	assert.Equal(t, config.FormatJSON, cfg.Outputs[0].Format)
	assert.Equal(t, []string{"pets"}, cfg.Outputs[0].IncludeTags)
}

func TestResolveConfig_Errors(t *testing.T) {
	_, err := ResolveConfig(RunParseParams{})
	assert.ErrorContains(t, err, "--config or --input")

	_, err = ResolveConfig(RunParseParams{Fallback: FallbackParams{Spec: "a.yaml", Format: "xml"}})
	assert.ErrorContains(t, err, "unknown format")
}

func TestResolveConfig_FileWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema-ir.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spec: a.yaml\noutputs:\n  - format: yaml\n"), 0o644))

	cfg, err := ResolveConfig(RunParseParams{
		ConfigPath: path,
		Validate:   true,
		Fallback:   FallbackParams{Spec: "b.yaml"},
	})
	require.NoError(t, err)
	assert.Equal(t, "b.yaml", cfg.Spec)
	assert.True(t, cfg.Validate)
	assert.Equal(t, config.FormatYAML, cfg.Outputs[0].Format)
}

func TestRunParse(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := RunParse(context.Background(), RunParseParams{
		Fallback: FallbackParams{Spec: "testdata/cyclic.yaml", Format: config.FormatSummary},
	}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "4 declarations, 0 operations")
	assert.Empty(t, stderr.String())
}

func TestRunCycles(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, RunCycles(context.Background(), "testdata/cyclic.yaml", false, &stdout, &bytes.Buffer{}))
	assert.Equal(t, "B -> A\n", stdout.String())
}

func TestRunValidate(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, RunValidate(context.Background(), "testdata/cyclic.yaml", &stdout))
	assert.Equal(t, "testdata/cyclic.yaml: valid\n", stdout.String())

	assert.Error(t, RunValidate(context.Background(), "testdata/missing.yaml", &stdout))
}
