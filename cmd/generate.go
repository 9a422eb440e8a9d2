// =============================================================================
// Catalogue Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which is the main command for
// turning the catalogue table into a source declaration.
//
// COMMAND USAGE:
//   catgen generate [flags]
//
// FLAGS:
//   --input, -i  : Catalogue table to read (.csv, or .xlsx workbook)
//   --output, -o : Declaration file to write
//   --target     : Output language (csharp | go)
//   --dry-run    : Render and report without writing the output file
//
// Flags override the configuration file.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/catalogue-generator/internal/generator"
)

// generateOptions holds the generate command's flag values.
type generateOptions struct {
	input  string
	output string
	target string
	dryRun bool
}

// newGenerateCmd builds the 'generate' command.
func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the catalogue declaration",
		Long: `The generate command reads every data row of the catalogue table, keeps
the first five fields of each row in file order, and writes them as a static
integer array declaration.

The output is rendered in memory and then swapped in with a rename, so a
failed run leaves any previous output untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, opts)
		},
	}

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	generateCmd.Flags().StringVarP(&opts.input, "input", "i", "", "Catalogue table to read (overrides config)")
	generateCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Declaration file to write (overrides config)")
	generateCmd.Flags().StringVar(&opts.target, "target", "", "Output language: csharp or go (overrides config)")
	generateCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Render without writing the output file")

	return generateCmd
}

// runGenerate applies flag overrides and runs the generator.
func runGenerate(cmd *cobra.Command, a *app, opts *generateOptions) error {
	cfg := a.cfg

	if opts.input != "" {
		cfg.Input = opts.input
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.target != "" {
		cfg.Target = strings.ToLower(opts.target)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	gen := generator.New(cfg, a.logger)
	gen.DryRun = opts.dryRun

	result := gen.Run()
	if result.Error != nil {
		return result.Error
	}

	out := cmd.OutOrStdout()
	if result.Stats.DryRun {
		fmt.Fprintf(out, "  (dry run) %s -> %s: %d row(s), %d byte(s), changed: %t\n",
			result.InputFile, cfg.Output, result.Stats.Rows, result.Stats.Bytes, result.Stats.Changed)
		return nil
	}

	fmt.Fprintf(out, "  ✓ %s -> %s (%d row(s))\n", result.InputFile, result.OutputFile, result.Stats.Rows)
	return nil
}
