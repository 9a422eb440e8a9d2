package csvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/catalogue-generator/internal/config"
	"github.com/ginjaninja78/catalogue-generator/internal/types"
)

func defaultSettings() config.ParseSettings {
	return config.Default().ParseSettings()
}

func fieldsOf(cat *types.Catalogue) [][]string {
	out := make([][]string, 0, len(cat.Rows))
	for _, r := range cat.Rows {
		out = append(out, r.Fields)
	}
	return out
}

func TestParseReader_Scenario(t *testing.T) {
	input := "id,a,b,c,d,extra\n" +
		`"1","2","3","4","5","ignored"` + "\n" +
		`"6","7","8","9","10","ignored2"` + "\n"

	cat, err := ParseReader(strings.NewReader(input), "catalogue_editor.csv", defaultSettings())
	require.NoError(t, err)

	want := [][]string{
		{"1", "2", "3", "4", "5"},
		{"6", "7", "8", "9", "10"},
	}
	if diff := cmp.Diff(want, fieldsOf(cat)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, cat.Rows[0].Line)
	assert.Equal(t, 3, cat.Rows[1].Line)
	assert.Equal(t, 5, cat.Columns)
	assert.Equal(t, "catalogue_editor.csv", cat.SourceFile)
}

func TestParseReader_Verbatim(t *testing.T) {
	t.Run("text kept as is", func(t *testing.T) {
		input := "h\n" + `" 7","-1","0x1F","abc","5"` + "\n"
		cat, err := ParseReader(strings.NewReader(input), "in.csv", defaultSettings())
		require.NoError(t, err)
		assert.Equal(t, []string{" 7", "-1", "0x1F", "abc", "5"}, cat.Rows[0].Fields)
	})

	t.Run("duplicates and order preserved", func(t *testing.T) {
		input := "h\n\"3\",\"3\",\"3\",\"3\",\"3\"\n\"1\",\"1\",\"1\",\"1\",\"1\"\n\"3\",\"3\",\"3\",\"3\",\"3\"\n"
		cat, err := ParseReader(strings.NewReader(input), "in.csv", defaultSettings())
		require.NoError(t, err)
		require.Len(t, cat.Rows, 3)
		assert.Equal(t, "3", cat.Rows[0].Fields[0])
		assert.Equal(t, "1", cat.Rows[1].Fields[0])
		assert.Equal(t, "3", cat.Rows[2].Fields[0])
	})

	t.Run("byte order mark stripped", func(t *testing.T) {
		input := "\ufeff\"id\",\"a\",\"b\",\"c\",\"d\"\n\"1\",\"2\",\"3\",\"4\",\"5\"\n"
		cat, err := ParseReader(strings.NewReader(input), "in.csv", defaultSettings())
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3", "4", "5"}, cat.Rows[0].Fields)
	})

	t.Run("crlf line endings", func(t *testing.T) {
		input := "h\r\n\"1\",\"2\",\"3\",\"4\",\"5\"\r\n"
		cat, err := ParseReader(strings.NewReader(input), "in.csv", defaultSettings())
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3", "4", "5"}, cat.Rows[0].Fields)
	})
}

func TestParseReader_HeaderOnly(t *testing.T) {
	cat, err := ParseReader(strings.NewReader("id,a,b,c,d\n"), "in.csv", defaultSettings())
	require.NoError(t, err)
	assert.NotNil(t, cat.Rows)
	assert.Empty(t, cat.Rows)
}

func TestParseReader_Settings(t *testing.T) {
	settings := config.ParseSettings{Columns: 2, HeaderRows: 2, Delimiter: ';'}
	input := "title\nid;alt\n\"1\";\"2\";\"3\"\n"

	cat, err := ParseReader(strings.NewReader(input), "in.csv", settings)
	require.NoError(t, err)
	require.Len(t, cat.Rows, 1)
	assert.Equal(t, []string{"1", "2"}, cat.Rows[0].Fields)
}

func TestParseReader_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		line     int
		contains string
	}{
		{
			name:     "too few fields",
			input:    "h\n\"1\",\"2\",\"3\",\"4\",\"5\"\n\"1\",\"2\",\"3\"\n",
			line:     3,
			contains: "row has 3 field(s), need at least 5",
		},
		{
			name:     "unterminated quote",
			input:    "h\n\"1\",\"2\",\"3\",\"4\",\"5\n",
			contains: "quote",
		},
		{
			name:     "bare quote in unquoted field",
			input:    "h\n1,2\"x,3,4,5\n",
			line:     2,
			contains: "quote",
		},
		{
			name:     "invalid utf-8",
			input:    "h\n\"1\",\"\xff\xfe\",\"3\",\"4\",\"5\"\n",
			contains: "UTF-8",
		},
		{
			name:     "empty file",
			input:    "",
			contains: "header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReader(strings.NewReader(tt.input), "in.csv", defaultSettings())
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrMalformedInput)
			assert.Contains(t, err.Error(), tt.contains)

			if tt.line > 0 {
				var typed *types.Error
				require.ErrorAs(t, err, &typed)
				assert.Equal(t, tt.line, typed.Line)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalogue_editor.csv")
		require.NoError(t, os.WriteFile(path, []byte("h\n\"1\",\"2\",\"3\",\"4\",\"5\"\n"), 0o644))

		cat, err := Parse(path, defaultSettings())
		require.NoError(t, err)
		assert.Equal(t, 1, cat.Len())
		assert.Equal(t, path, cat.SourceFile)
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalogue_editor.csv")
		_, err := Parse(path, defaultSettings())
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.Contains(t, err.Error(), path)
	})
}
