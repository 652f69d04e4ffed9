package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peekknuf/wineqa/internal/connectors"
)

const wineSample = `"fixed acidity";"residual sugar";"density";"alcohol";"quality"
7.4;1.9;0.9978;9.4;5
7.8;2.6;0.9968;9.8;5
7.8;2.3;0.997;9.8;5
11.2;1.9;0.998;9.8;6
`

func createTestCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"semicolon", wineSample, ';'},
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"tab", "a\tb\n1\t2\n", '\t'},
		{"pipe", "a|b\n1|2\n", '|'},
		{"quoted commas ignored", "\"a,b\";\"c,d\"\n1;2\n", ';'},
		{"fallback", "abc\n", ','},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectDelimiter([]byte(tc.data), 0))
		})
	}
}

func TestLoad_WineFormat(t *testing.T) {
	path := createTestCSV(t, "winequality-red.csv", wineSample)

	frame, err := Load(path, DefaultLoadOptions())
	require.NoError(t, err)

	assert.Equal(t, 4, frame.Len())
	assert.Equal(t, []string{"fixed acidity", "residual sugar", "density", "alcohol", "quality"}, frame.Columns)
	assert.Equal(t, int64(len(wineSample)), frame.Size)

	density, err := frame.Column("density")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.9978, 0.9968, 0.997, 0.998}, density)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), DefaultLoadOptions())
	assert.ErrorContains(t, err, "failed to open file")

	path := createTestCSV(t, "bad.csv", "a;b\n1;x\n")
	_, err = Load(path, DefaultLoadOptions())
	assert.ErrorContains(t, err, `line 2, column "b"`)

	path = createTestCSV(t, "empty.csv", "a;b\n")
	_, err = Load(path, DefaultLoadOptions())
	assert.ErrorIs(t, err, ErrEmptyDataset)

	path = createTestCSV(t, "blank.csv", "a;b\n1;\n")
	_, err = Load(path, DefaultLoadOptions())
	assert.ErrorContains(t, err, "empty value")

	path = createTestCSV(t, "dup.csv", "a;a\n1;2\n")
	_, err = Load(path, DefaultLoadOptions())
	assert.ErrorContains(t, err, "duplicate column")
}

func TestParse_ExplicitDelimiter(t *testing.T) {
	frame, err := Parse(strings.NewReader("x|y\n1|2\n3|4\n"), "inline", LoadOptions{Delimiter: '|'}, nil)
	require.NoError(t, err)
	y, err := frame.Column("y")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, y)

	_, err = Parse(strings.NewReader("x\n1\n"), "inline", LoadOptions{Delimiter: ':'}, nil)
	assert.ErrorContains(t, err, "unsupported delimiter")
}

func TestFrame_RowsSelectWithColumn(t *testing.T) {
	frame, err := NewFrame("red", []string{"a", "b"}, map[string][]float64{
		"a": {1, 2, 3},
		"b": {10, 20, 30},
	})
	require.NoError(t, err)

	sub, err := frame.Rows([]int{2, 0})
	require.NoError(t, err)
	a, _ := sub.Column("a")
	b, _ := sub.Column("b")
	assert.Equal(t, []float64{3, 1}, a)
	assert.Equal(t, []float64{30, 10}, b)

	_, err = frame.Rows([]int{3})
	assert.ErrorContains(t, err, "out of range")

	only, err := frame.Select("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, only.Columns)
	assert.Equal(t, 3, only.Len())

	_, err = frame.Select("c")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	replaced, err := frame.WithColumn("a", []float64{7, 8, 9})
	require.NoError(t, err)
	a, _ = replaced.Column("a")
	assert.Equal(t, []float64{7, 8, 9}, a)
	orig, _ := frame.Column("a")
	assert.Equal(t, []float64{1, 2, 3}, orig)

	_, err = frame.WithColumn("a", []float64{1})
	assert.Error(t, err)
}

func TestNewFrame_LengthMismatch(t *testing.T) {
	_, err := NewFrame("x", []string{"a", "b"}, map[string][]float64{"a": {1}, "b": {1, 2}})
	assert.ErrorContains(t, err, "expected 1")
}

func TestLoadAll(t *testing.T) {
	red := createTestCSV(t, "winequality-red.csv", wineSample)
	white := createTestCSV(t, "winequality-white.csv", "density,quality\n0.99,6\n0.98,7\n")

	var seen []connectors.Variant
	frames, err := LoadAll(context.Background(), map[connectors.Variant]connectors.FileMeta{
		connectors.Red:   {Path: red},
		connectors.White: {Path: white},
	}, DefaultLoadOptions(), func(v connectors.Variant, _ *Frame) {
		seen = append(seen, v)
	})
	require.NoError(t, err)
	assert.Len(t, seen, 2)
	assert.Equal(t, 4, frames[connectors.Red].Len())
	assert.Equal(t, 2, frames[connectors.White].Len())
	assert.Equal(t, "white", frames[connectors.White].Name)
}

func TestLoadAll_PropagatesError(t *testing.T) {
	_, err := LoadAll(context.Background(), map[connectors.Variant]connectors.FileMeta{
		connectors.Red: {Path: filepath.Join(t.TempDir(), "nope.csv")},
	}, DefaultLoadOptions(), nil)
	assert.ErrorContains(t, err, "loading red dataset")
}
