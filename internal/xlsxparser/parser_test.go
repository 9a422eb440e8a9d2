package xlsxparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/catalogue-generator/internal/config"
	"github.com/ginjaninja78/catalogue-generator/internal/types"
)

// buildWorkbook writes rows to the named sheet of a new workbook.
func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		if name != "Sheet1" {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, f.SetSheetRow(name, cell, &r))
		}
	}

	path := filepath.Join(t.TempDir(), "catalogue_editor.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParse_FirstSheet(t *testing.T) {
	path := buildWorkbook(t, map[string][][]interface{}{
		"Sheet1": {
			{"TR1", "TR2", "TR3", "TR4", "TR5", "Name"},
			{1, 2, 3, 4, 5, "Lara"},
			{},
			{6, 7, 8, 9, 10, "Wolf"},
		},
	})

	cat, err := Parse(path, config.Default().ParseSettings())
	require.NoError(t, err)
	require.Len(t, cat.Rows, 2)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, cat.Rows[0].Fields)
	assert.Equal(t, 2, cat.Rows[0].Line)
	assert.Equal(t, []string{"6", "7", "8", "9", "10"}, cat.Rows[1].Fields)
	assert.Equal(t, 4, cat.Rows[1].Line)
}

func TestParse_NamedSheet(t *testing.T) {
	path := buildWorkbook(t, map[string][][]interface{}{
		"Sheet1": {{"notes"}},
		"Models": {
			{"TR1", "TR2", "TR3", "TR4", "TR5"},
			{"-1", "12", "12", "12", "-1"},
		},
	})

	settings := config.Default().ParseSettings()
	settings.Sheet = "Models"

	cat, err := Parse(path, settings)
	require.NoError(t, err)
	require.Len(t, cat.Rows, 1)
	assert.Equal(t, []string{"-1", "12", "12", "12", "-1"}, cat.Rows[0].Fields)

	settings.Sheet = "Missing"
	_, err = Parse(path, settings)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMalformedInput)
	assert.Contains(t, err.Error(), `sheet "Missing" not found`)
}

func TestParse_Errors(t *testing.T) {
	t.Run("short row", func(t *testing.T) {
		path := buildWorkbook(t, map[string][][]interface{}{
			"Sheet1": {
				{"TR1", "TR2", "TR3", "TR4", "TR5"},
				{1, 2, 3},
			},
		})

		_, err := Parse(path, config.Default().ParseSettings())
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrMalformedInput)

		var typed *types.Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, 2, typed.Line)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Parse(filepath.Join(t.TempDir(), "none.xlsx"), config.Default().ParseSettings())
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("not a workbook", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("id,a,b\n"), 0o644))

		_, err := Parse(path, config.Default().ParseSettings())
		assert.ErrorIs(t, err, types.ErrMalformedInput)
	})
}

func TestParseRows_HeaderOnly(t *testing.T) {
	cat, err := parseRows([][]string{{"TR1", "TR2", "TR3", "TR4", "TR5"}}, "x.xlsx", config.Default().ParseSettings())
	require.NoError(t, err)
	assert.Empty(t, cat.Rows)

	_, err = parseRows(nil, "x.xlsx", config.Default().ParseSettings())
	assert.ErrorIs(t, err, types.ErrMalformedInput)
}
