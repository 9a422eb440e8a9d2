// =============================================================================
// Catalogue Generator - Validation Engine
// =============================================================================
//
// Generation never validates field contents: fields are copied verbatim so
// the generator stays agnostic of the consumer's numeric type. This module
// is the separate, opt-in check run by "catgen validate" before a build.
//
// RULES:
//   - int32   (error)   : every field is a base-10 integer that fits an int32,
//                         the element type of the C# declaration
//   - unused  (warning) : every field of a row is -1, i.e. the model exists
//                         in no engine generation
//
// Duplicated rows and duplicated ids are allowed; lookups take the first
// matching row.
//
// ERROR HANDLING:
//   - Errors are collected, not returned one at a time
//   - Each error names the source line, the column and the offending value
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/catalogue-generator/internal/catalogue"
	"github.com/ginjaninja78/catalogue-generator/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Rule names.
const (
	RuleInt32  = "int32"
	RuleUnused = "unused"
)

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Line is the source line (CSV) or sheet row (XLSX) of the row.
	Line int

	// Column is the 0-based field index, -1 for row-level findings.
	Column int

	// Value is the offending field text.
	Value string

	// Rule is the rule that was violated.
	Rule string

	// Message is a human-readable explanation.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("[%s] line %d: %s", strings.ToUpper(e.Severity), e.Line, e.Message)
	}
	return fmt.Sprintf("[%s] line %d, %s: %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.Line,
		columnName(e.Column),
		e.Message,
		e.Value,
	)
}

// columnName labels a column with its engine generation when it has one.
func columnName(col int) string {
	if col >= int(catalogue.TR1) && col <= int(catalogue.TR5) {
		return fmt.Sprintf("column %d (%s)", col+1, catalogue.Engine(col))
	}
	return fmt.Sprintf("column %d", col+1)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result contains the results of validation.
type Result struct {
	// IsValid is true if there are no errors (and, with
	// TreatWarningsAsErrors, no warnings).
	IsValid bool

	// Errors contains all findings in row order, warnings included.
	Errors []*ValidationError

	ErrorCount   int
	WarningCount int

	// RowsValidated is the number of rows inspected.
	RowsValidated int
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Options contains options for validation.
type Options struct {
	// StopOnFirstError stops validation after the first error.
	StopOnFirstError bool

	// TreatWarningsAsErrors makes warnings invalidate the result.
	TreatWarningsAsErrors bool
}

// Validator checks catalogue rows.
type Validator struct {
	options Options
}

// NewValidator creates a Validator with the given options.
func NewValidator(options Options) *Validator {
	return &Validator{options: options}
}

// ValidateAll validates every row and returns a detailed result.
func (v *Validator) ValidateAll(cat *types.Catalogue) *Result {
	result := &Result{
		IsValid: true,
		Errors:  make([]*ValidationError, 0),
	}

	for _, row := range cat.Rows {
		result.RowsValidated++

		for _, err := range ValidateRow(row) {
			result.Errors = append(result.Errors, err)

			if err.Severity == SeverityError {
				result.ErrorCount++
				result.IsValid = false

				if v.options.StopOnFirstError {
					return result
				}
			} else {
				result.WarningCount++

				if v.options.TreatWarningsAsErrors {
					result.IsValid = false
				}
			}
		}
	}

	return result
}

// ValidateRow returns the findings for a single row.
func ValidateRow(row types.Row) []*ValidationError {
	var errs []*ValidationError

	unused := len(row.Fields) > 0
	for col, value := range row.Fields {
		if msg := validateInt32(value); msg != "" {
			errs = append(errs, &ValidationError{
				Severity: SeverityError,
				Line:     row.Line,
				Column:   col,
				Value:    value,
				Rule:     RuleInt32,
				Message:  msg,
			})
		}
		if value != "-1" {
			unused = false
		}
	}

	if unused {
		errs = append(errs, &ValidationError{
			Severity: SeverityWarning,
			Line:     row.Line,
			Column:   -1,
			Rule:     RuleUnused,
			Message:  "model is -1 in every engine generation",
		})
	}

	return errs
}

// validateInt32 returns an error message, or "" when value is a valid int32.
func validateInt32(value string) string {
	if value == "" {
		return "empty field"
	}
	if strings.TrimSpace(value) != value {
		return "surrounding whitespace"
	}

	if _, err := strconv.ParseInt(value, 10, 32); err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return "out of int32 range"
		}
		return "not a base-10 integer"
	}

	return ""
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation findings for display.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
