package main

import (
	"log"
	"os"

	"github.com/blimu-dev/schema-ir/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "schema-ir",
		Short:         "Lower OpenAPI documents into a typed intermediate representation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newParseCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newCyclesCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newParseCmd() *cobra.Command {
	var p cli.RunParseParams

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a document and print its model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunParse(cmd.Context(), p, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&p.ConfigPath, "config", "c", "", "Path to schema-ir.yaml config")
	cmd.Flags().BoolVar(&p.Validate, "validate", false, "Validate the document before parsing")
	cmd.Flags().BoolVarP(&p.Verbose, "verbose", "v", false, "Log debug diagnostics")
	cmd.Flags().BoolVar(&p.KeepOrder, "keep-order", false, "Keep declarations in document order")
	// Fallback single-output flags
	cmd.Flags().StringVar(&p.Fallback.Spec, "input", "", "OpenAPI spec file (yaml/json) or URL")
	cmd.Flags().StringVar(&p.Fallback.Format, "format", "json", "Output format (json, yaml, summary, template)")
	cmd.Flags().StringVar(&p.Fallback.Template, "template", "", "Template file for --format template")
	cmd.Flags().StringVar(&p.Fallback.Out, "out", "", "Output file (default stdout)")
	cmd.Flags().StringArrayVar(&p.Fallback.IncludeTags, "include-tags", nil, "Regex patterns for tags to include")
	cmd.Flags().StringArrayVar(&p.Fallback.ExcludeTags, "exclude-tags", nil, "Regex patterns for tags to exclude")
	cmd.Flags().BoolVar(&p.Fallback.PruneUnused, "prune", false, "Drop declarations no operation references")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunValidate(cmd.Context(), input, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI spec file (yaml/json) or URL")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newCyclesCmd() *cobra.Command {
	var input string
	var verbose bool
	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "List groups of mutually recursive schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunCycles(cmd.Context(), input, verbose, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI spec file (yaml/json) or URL")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
