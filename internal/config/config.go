// =============================================================================
// Catalogue Generator - Configuration Module
// =============================================================================
//
// This module loads the generator configuration. The tool is meant to run
// with no configuration at all: every setting has a default that reproduces
// the fixed behaviour (catalogue_editor.csv -> Catalogue.cs, C# template).
//
// CONFIGURATION FILE (catgen.yaml):
//   input: catalogue_editor.csv
//   output: Catalogue.cs
//   target: csharp            # csharp | go
//   columns: 5
//   header_rows: 1
//   delimiter: ","
//   sheet: ""                 # xlsx input only
//   log_level: info
//   csharp: {namespace: FreeRaider.Loader, class: Catalogue, field: Models}
//   go: {package: catalogue, var: Models}
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultConfigFile = "catgen.yaml"
	DefaultInput      = "catalogue_editor.csv"
	DefaultOutput     = "Catalogue.cs"
	DefaultColumns    = 5

	TargetCSharp = "csharp"
	TargetGo     = "go"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the generator configuration.
type Config struct {
	// Input is the catalogue file. A ".xlsx" extension selects the workbook
	// parser, anything else is read as CSV.
	Input string `yaml:"input"`

	// Output is the generated source file. It is overwritten on every run.
	Output string `yaml:"output"`

	// Target selects the declaration template: "csharp" or "go".
	Target string `yaml:"target"`

	// Columns is the number of leading fields kept from each row.
	// Rows with fewer fields are rejected; extra fields are dropped.
	Columns int `yaml:"columns"`

	// HeaderRows is the number of leading records discarded as headers.
	HeaderRows int `yaml:"header_rows"`

	// Delimiter is the single-character field separator for CSV input.
	Delimiter string `yaml:"delimiter"`

	// Sheet names the worksheet for XLSX input. Empty means the first sheet.
	Sheet string `yaml:"sheet"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	CSharp CSharpTemplate `yaml:"csharp"`
	Go     GoTemplate     `yaml:"go"`
}

// CSharpTemplate names the wrapper of the C# declaration.
type CSharpTemplate struct {
	Namespace string `yaml:"namespace"`
	Class     string `yaml:"class"`
	Field     string `yaml:"field"`
}

// GoTemplate names the wrapper of the Go declaration.
type GoTemplate struct {
	Package string `yaml:"package"`
	Var     string `yaml:"var"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - path: The path to the configuration file.
//   - required: When false, a missing file yields the defaults instead of
//     an error. The CLI passes true only when --config was given explicitly.
//
// RETURNS:
//   - A pointer to the Config with defaults applied.
//   - An error if the file cannot be read, parsed or fails validation.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Input == "" {
		cfg.Input = DefaultInput
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.Target == "" {
		cfg.Target = TargetCSharp
	}
	cfg.Target = strings.ToLower(cfg.Target)
	if cfg.Columns == 0 {
		cfg.Columns = DefaultColumns
	}
	if cfg.HeaderRows == 0 {
		cfg.HeaderRows = 1
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = ","
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.CSharp.Namespace == "" {
		cfg.CSharp.Namespace = "FreeRaider.Loader"
	}
	if cfg.CSharp.Class == "" {
		cfg.CSharp.Class = "Catalogue"
	}
	if cfg.CSharp.Field == "" {
		cfg.CSharp.Field = "Models"
	}

	if cfg.Go.Package == "" {
		cfg.Go.Package = "catalogue"
	}
	if cfg.Go.Var == "" {
		cfg.Go.Var = "Models"
	}
}

// Validate checks option values that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Target {
	case TargetCSharp, TargetGo:
	default:
		return fmt.Errorf("unknown target %q (want %q or %q)", c.Target, TargetCSharp, TargetGo)
	}

	if c.Columns < 1 {
		return fmt.Errorf("columns must be at least 1, got %d", c.Columns)
	}
	if c.HeaderRows < 0 {
		return fmt.Errorf("header_rows must not be negative, got %d", c.HeaderRows)
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	switch c.DelimiterRune() {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("delimiter %q cannot separate CSV fields", c.Delimiter)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	return nil
}

// DelimiterRune returns the configured delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// =============================================================================
// PARSER SETTINGS
// =============================================================================

// ParseSettings is the subset of the configuration the catalogue parsers
// need. Both the CSV and the workbook parser accept it.
type ParseSettings struct {
	// Columns is the number of leading fields retained per row.
	Columns int

	// HeaderRows is the number of leading records discarded.
	HeaderRows int

	// Delimiter separates CSV fields. Ignored for workbooks.
	Delimiter rune

	// Sheet names the worksheet for workbooks. Ignored for CSV.
	Sheet string
}

// ParseSettings returns the parser settings for this configuration.
func (c *Config) ParseSettings() ParseSettings {
	return ParseSettings{
		Columns:    c.Columns,
		HeaderRows: c.HeaderRows,
		Delimiter:  c.DelimiterRune(),
		Sheet:      c.Sheet,
	}
}
