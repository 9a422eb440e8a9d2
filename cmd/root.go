// =============================================================================
// Catalogue Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to. Called without
// a subcommand it runs 'generate' with the configured defaults, so a bare
// 'catgen' in the asset directory turns catalogue_editor.csv into
// Catalogue.cs.
//
// COBRA CLI STRUCTURE:
//   rootCmd (catgen)            -> generate
//   ├── generateCmd (catgen generate)
//   ├── validateCmd (catgen validate)
//   ├── lookupCmd   (catgen lookup)
//   └── versionCmd  (catgen version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the YAML configuration before any subcommand runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/catalogue-generator/internal/config"
	"github.com/ginjaninja78/catalogue-generator/internal/logging"
)

// =============================================================================
// SHARED COMMAND STATE
// =============================================================================

// app holds the global flag values and what PersistentPreRunE derives from
// them. Each command tree gets its own app, so tests can build fresh trees.
type app struct {
	// cfgFile is the path to the configuration file (--config).
	cfgFile string

	// verbose enables debug logging (--verbose).
	verbose bool

	// cfg is the loaded configuration.
	cfg *config.Config

	// logger is the zap logger built from cfg.LogLevel and verbose.
	logger *zap.Logger
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCmd builds the complete command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "catgen",
		Short: "Catalogue Generator - Turn the model catalogue table into a source declaration",
		Long: `Catalogue Generator reads the tabular model catalogue edited by hand
(catalogue_editor.csv) and emits it as a static two-dimensional integer
array declaration (Catalogue.cs) for the level loader to compile in.

Each row is one model; column i is the model's object ID in engine
generation TR1..TR5. Extra columns are ignored, fields are copied verbatim.

Example Usage:
  catgen                                 # catalogue_editor.csv -> Catalogue.cs
  catgen generate --target go -o cat.go  # emit a Go declaration instead
  catgen validate                        # check every field is an int32
  catgen lookup --from TR1 --to TR4 12   # translate a model ID`,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},

		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				// Sync on a terminal stderr reports EINVAL; there is nothing
				// to recover.
				_ = a.logger.Sync()
			}
		},

		// With no subcommand, generate with configured defaults.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, &generateOptions{})
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&a.cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file (optional unless given explicitly)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&a.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newValidateCmd(a),
		newLookupCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// init loads the configuration and builds the logger.
//
// PARAMETERS:
//   - cmd: The command being executed; used to tell whether --config was
//     given explicitly.
//
// RETURNS:
//   - An error if the configuration cannot be loaded or the log level is
//     invalid.
func (a *app) init(cmd *cobra.Command) error {
	required := cmd.Flags().Changed("config")

	cfg, err := config.Load(a.cfgFile, required)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, a.verbose)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger

	logger.Debug("Loaded configuration",
		zap.String("config", a.cfgFile),
		zap.Bool("explicit", required),
		zap.String("target", cfg.Target))

	return nil
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
