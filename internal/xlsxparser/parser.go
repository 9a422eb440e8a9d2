// =============================================================================
// Catalogue Generator - XLSX Parser Module
// =============================================================================
//
// The catalogue is maintained in a spreadsheet and usually exported to CSV
// before generation. This module reads the workbook directly so the export
// step can be skipped.
//
// SHEET LAYOUT:
//   Row 1..HeaderRows : headers (discarded)
//   Following rows    : one model per row, one engine generation per column
//
// Cells are read as their displayed text, which is what a CSV export of the
// same sheet would contain. Fully empty rows are skipped, the same way the
// CSV reader skips blank lines.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/catalogue-generator/internal/config"
	"github.com/ginjaninja78/catalogue-generator/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a catalogue from an XLSX workbook.
//
// PARAMETERS:
//   - workbookPath: The path to the workbook.
//   - settings: Column count, header rows and sheet name. An empty sheet
//     name selects the first sheet.
//
// RETURNS:
//   - The parsed catalogue.
//   - A *types.Error of kind NotFound, MalformedInput or IOError.
func Parse(workbookPath string, settings config.ParseSettings) (*types.Catalogue, error) {
	if _, err := os.Stat(workbookPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.NewError(types.NotFound, workbookPath, 0, err)
		}
		return nil, types.NewError(types.IOError, workbookPath, 0, err)
	}

	// Open the workbook. A file that exists but is not a valid workbook is
	// malformed input, not an I/O failure.
	f, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return nil, types.NewError(types.MalformedInput, workbookPath, 0, fmt.Errorf("open workbook: %w", err))
	}
	defer f.Close()

	sheetName, err := resolveSheet(f, settings.Sheet)
	if err != nil {
		return nil, types.NewError(types.MalformedInput, workbookPath, 0, err)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, types.NewError(types.MalformedInput, workbookPath, 0, fmt.Errorf("read sheet %q: %w", sheetName, err))
	}

	return parseRows(rows, workbookPath, settings)
}

// resolveSheet returns the requested sheet, or the first sheet when none is
// requested.
func resolveSheet(f *excelize.File, requested string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	if requested == "" {
		return sheets[0], nil
	}

	for _, name := range sheets {
		if name == requested {
			return name, nil
		}
	}

	return "", fmt.Errorf("sheet %q not found (have %s)", requested, strings.Join(sheets, ", "))
}

// parseRows applies the header and column rules to raw sheet rows.
// Row numbers in errors are 1-based sheet rows.
func parseRows(rows [][]string, name string, settings config.ParseSettings) (*types.Catalogue, error) {
	catalogue := &types.Catalogue{
		Rows:       []types.Row{},
		Columns:    settings.Columns,
		SourceFile: name,
	}

	records := 0
	for i, row := range rows {
		// Skip empty rows.
		if isRowEmpty(row) {
			continue
		}
		records++

		if records <= settings.HeaderRows {
			continue
		}

		// GetRows trims trailing empty cells, so a short row here really is
		// missing values.
		if len(row) < settings.Columns {
			return nil, types.NewError(types.MalformedInput, name, i+1,
				fmt.Errorf("row has %d cell(s), need at least %d", len(row), settings.Columns))
		}

		fields := make([]string, settings.Columns)
		copy(fields, row[:settings.Columns])

		catalogue.Rows = append(catalogue.Rows, types.Row{Fields: fields, Line: i + 1})
	}

	if records < settings.HeaderRows {
		return nil, types.NewError(types.MalformedInput, name, 0,
			fmt.Errorf("expected %d header row(s), found %d row(s)", settings.HeaderRows, records))
	}

	return catalogue, nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
