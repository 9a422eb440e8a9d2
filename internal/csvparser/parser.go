// =============================================================================
// Catalogue Generator - CSV Parser Module
// =============================================================================
//
// This module parses the catalogue CSV exported from the catalogue editor.
// Parsing is strict because the generated declaration is compiled by a
// downstream build: a quoting mistake must stop the run, not produce a
// silently shifted table.
//
// FORMAT:
//   - Comma-separated (configurable), every data field quoted
//   - UTF-8, an optional byte order mark is stripped
//   - The first record(s) are a header and are discarded
//   - Each data record must carry at least Columns fields; extras are dropped
//
// FIELD HANDLING:
//   Fields are copied verbatim. No trimming, no numeric conversion: the
//   generator stays agnostic of the consumer's integer type.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/catalogue-generator/internal/config"
	"github.com/ginjaninja78/catalogue-generator/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a catalogue CSV file.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: Column count, header rows and delimiter.
//
// RETURNS:
//   - The parsed catalogue.
//   - A *types.Error of kind NotFound when the file does not exist,
//     MalformedInput on decoding, quoting or field count errors, and
//     IOError when the file exists but cannot be read.
func Parse(filePath string, settings config.ParseSettings) (*types.Catalogue, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.NewError(types.NotFound, filePath, 0, err)
		}
		return nil, types.NewError(types.IOError, filePath, 0, err)
	}
	defer file.Close()

	return ParseReader(file, filePath, settings)
}

// ParseReader parses a catalogue from r. name is used in error messages.
func ParseReader(r io.Reader, name string, settings config.ParseSettings) (*types.Catalogue, error) {
	// Validate raw bytes first, then drop a BOM if present. The other order
	// would let the BOM decoder replace invalid bytes with U+FFFD.
	decoded := transform.NewReader(r, transform.Chain(
		encoding.UTF8Validator,
		unicode.BOMOverride(transform.Nop),
	))

	csvReader := csv.NewReader(bufio.NewReader(decoded))
	configureReader(csvReader, settings)

	catalogue := &types.Catalogue{
		Rows:       []types.Row{},
		Columns:    settings.Columns,
		SourceFile: name,
	}

	records := 0
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, classifyReadError(name, err)
		}
		records++

		// Header records are discarded.
		if records <= settings.HeaderRows {
			continue
		}

		line, _ := csvReader.FieldPos(0)
		row, err := extractRow(record, line, settings.Columns)
		if err != nil {
			return nil, types.NewError(types.MalformedInput, name, line, err)
		}

		catalogue.Rows = append(catalogue.Rows, row)
	}

	if records < settings.HeaderRows {
		return nil, types.NewError(types.MalformedInput, name, 0,
			fmt.Errorf("expected %d header record(s), found %d record(s)", settings.HeaderRows, records))
	}

	return catalogue, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.ParseSettings) {
	if settings.Delimiter != 0 {
		reader.Comma = settings.Delimiter
	}

	// Rows may carry any number of trailing columns; the count is checked
	// against settings.Columns per row instead.
	reader.FieldsPerRecord = -1

	// Quotes must follow the RFC 4180 rules.
	reader.LazyQuotes = false

	// Fields are kept verbatim.
	reader.TrimLeadingSpace = false
}

// extractRow keeps the first columns fields of a record.
func extractRow(record []string, line, columns int) (types.Row, error) {
	if len(record) < columns {
		return types.Row{}, fmt.Errorf("row has %d field(s), need at least %d", len(record), columns)
	}

	fields := make([]string, columns)
	copy(fields, record[:columns])

	return types.Row{Fields: fields, Line: line}, nil
}

// classifyReadError maps an error from the CSV reader onto the error
// taxonomy. Decoding and syntax errors are MalformedInput, anything else
// came from the underlying reader and is an IOError.
func classifyReadError(name string, err error) error {
	var parseErr *csv.ParseError
	switch {
	case errors.As(err, &parseErr):
		return types.NewError(types.MalformedInput, name, parseErr.Line, parseErr.Err)
	case errors.Is(err, encoding.ErrInvalidUTF8):
		return types.NewError(types.MalformedInput, name, 0, err)
	default:
		return types.NewError(types.IOError, name, 0, err)
	}
}
