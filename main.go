// =============================================================================
// Catalogue Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Catalogue Generator CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   catgen                  - Generate Catalogue.cs from catalogue_editor.csv
//   catgen generate         - Same, with --input/--output/--target overrides
//   catgen validate         - Check catalogue fields without generating
//   catgen lookup           - Translate model IDs between engine generations
//   catgen version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Parsing, rendering, lookup and validation logic
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/catalogue-generator/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
