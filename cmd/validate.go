// =============================================================================
// Catalogue Generator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command. It reads the catalogue the same
// way 'generate' does and reports fields that would not compile into the
// int[][] declaration, plus rows that are -1 everywhere.
//
// COMMAND USAGE:
//   catgen validate [flags]
//
// FLAGS:
//   --input, -i : Catalogue table to read (overrides config)
//   --strict    : Treat warnings as errors
//   --fail-fast : Stop at the first error
//
// The command exits non-zero when any error is found.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/catalogue-generator/internal/generator"
	"github.com/ginjaninja78/catalogue-generator/internal/validation"
)

// validateOptions holds the validate command's flag values.
type validateOptions struct {
	input    string
	strict   bool
	failFast bool
}

// newValidateCmd builds the 'validate' command.
func newValidateCmd(a *app) *cobra.Command {
	opts := &validateOptions{}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every catalogue field is a 32-bit integer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, a, opts)
		},
	}

	validateCmd.Flags().StringVarP(&opts.input, "input", "i", "", "Catalogue table to read (overrides config)")
	validateCmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat warnings as errors")
	validateCmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "Stop at the first error")

	return validateCmd
}

// runValidate loads the catalogue and prints the validation report.
func runValidate(cmd *cobra.Command, a *app, opts *validateOptions) error {
	cfg := a.cfg
	if opts.input != "" {
		cfg.Input = opts.input
	}

	catalogue, err := generator.LoadCatalogue(cfg)
	if err != nil {
		return err
	}

	validator := validation.NewValidator(validation.Options{
		StopOnFirstError:      opts.failFast,
		TreatWarningsAsErrors: opts.strict,
	})
	result := validator.ValidateAll(catalogue)

	a.logger.Debug("Validated catalogue",
		zap.String("input", cfg.Input),
		zap.Int("rows", result.RowsValidated),
		zap.Int("errors", result.ErrorCount),
		zap.Int("warnings", result.WarningCount))

	out := cmd.OutOrStdout()
	fmt.Fprint(out, validation.FormatErrors(result.Errors))
	if len(result.Errors) == 0 {
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Rows: %d, errors: %d, warnings: %d\n",
		result.RowsValidated, result.ErrorCount, result.WarningCount)

	if !result.IsValid {
		return fmt.Errorf("%s: validation failed with %d error(s) and %d warning(s)",
			cfg.Input, result.ErrorCount, result.WarningCount)
	}
	return nil
}
