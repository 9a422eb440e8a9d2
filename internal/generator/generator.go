// =============================================================================
// Catalogue Generator - Generator Module
// =============================================================================
//
// This module contains the core generation logic. It orchestrates the whole
// pipeline for one run, from reading the catalogue to replacing the output.
//
// GENERATION PIPELINE:
//   1. Read the catalogue (CSV, or XLSX by extension)
//   2. Render the declaration in memory
//   3. Replace the output file atomically
//
// Every failure is fatal for the run. Because rendering completes before the
// output path is touched and the write goes through a temp file + rename, a
// failed run never leaves a truncated output behind.
//
// =============================================================================

package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/catalogue-generator/internal/codegen"
	"github.com/ginjaninja78/catalogue-generator/internal/config"
	"github.com/ginjaninja78/catalogue-generator/internal/csvparser"
	"github.com/ginjaninja78/catalogue-generator/internal/types"
	"github.com/ginjaninja78/catalogue-generator/internal/xlsxparser"
	"github.com/ginjaninja78/catalogue-generator/pkg/utils"
)

// outputPerm is the permission of a newly created output file.
const outputPerm = 0o644

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one generation run.
type Result struct {
	// InputFile is the catalogue that was read.
	InputFile string

	// OutputFile is the generated file. Empty if the run failed.
	OutputFile string

	// Success indicates whether the run completed.
	Success bool

	// Error is the fatal error, nil on success. It wraps a *types.Error
	// whenever the failure belongs to the error taxonomy.
	Error error

	// Stats contains run statistics.
	Stats Stats
}

// Stats contains statistics about a run.
type Stats struct {
	// Rows is the number of catalogue rows rendered.
	Rows int

	// Bytes is the size of the rendered declaration.
	Bytes int

	// Changed is false when the output already held identical bytes.
	Changed bool

	// DryRun is true when the output was rendered but not written.
	DryRun bool

	// ProcessingTime is the wall time of the run.
	ProcessingTime time.Duration
}

// =============================================================================
// GENERATOR STRUCTURE
// =============================================================================

// Generator runs the pipeline for one configuration.
type Generator struct {
	cfg    *config.Config
	logger *zap.Logger

	// DryRun renders without writing the output file.
	DryRun bool
}

// New creates a Generator. A nil logger discards log output.
func New(cfg *config.Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		cfg:    cfg,
		logger: logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the generation pipeline.
//
// RETURNS:
//   - A Result describing the outcome. Result.Error is set on failure.
func (g *Generator) Run() Result {
	startTime := time.Now()
	result := Result{
		InputFile: g.cfg.Input,
	}

	log := g.logger.With(zap.String("input", g.cfg.Input), zap.String("output", g.cfg.Output))

	// =========================================================================
	// STEP 1: READ CATALOGUE
	// =========================================================================

	log.Debug("Reading catalogue")

	catalogue, err := LoadCatalogue(g.cfg)
	if err != nil {
		result.Error = err
		return result
	}

	result.Stats.Rows = catalogue.Len()
	log.Debug("Read catalogue", zap.Int("rows", catalogue.Len()))

	// =========================================================================
	// STEP 2: RENDER DECLARATION
	// =========================================================================

	content, err := codegen.Render(catalogue, codegen.OptionsFromConfig(g.cfg))
	if err != nil {
		result.Error = err
		return result
	}

	result.Stats.Bytes = len(content)
	result.Stats.Changed = !sameContent(g.cfg.Output, content)
	log.Debug("Rendered declaration", zap.String("target", g.cfg.Target), zap.Int("bytes", len(content)))

	// =========================================================================
	// STEP 3: WRITE OUTPUT
	// =========================================================================

	if g.DryRun {
		result.Stats.DryRun = true
		log.Info("Dry run, output not written", zap.Int("rows", result.Stats.Rows), zap.Bool("changed", result.Stats.Changed))
	} else {
		if err := utils.WriteFileAtomic(g.cfg.Output, content, outputPerm); err != nil {
			result.Error = types.NewError(types.IOError, g.cfg.Output, 0, err)
			return result
		}
		log.Info("Wrote catalogue",
			zap.Int("rows", result.Stats.Rows),
			zap.Int("bytes", result.Stats.Bytes),
			zap.Bool("changed", result.Stats.Changed))
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.OutputFile = g.cfg.Output
	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// LoadCatalogue reads the configured input, choosing the parser by file
// extension: ".xlsx" is read as a workbook, anything else as CSV.
func LoadCatalogue(cfg *config.Config) (*types.Catalogue, error) {
	settings := cfg.ParseSettings()

	if strings.EqualFold(filepath.Ext(cfg.Input), ".xlsx") {
		return xlsxparser.Parse(cfg.Input, settings)
	}
	return csvparser.Parse(cfg.Input, settings)
}

// sameContent reports whether path already holds exactly content.
func sameContent(path string, content []byte) bool {
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(existing, content)
}
