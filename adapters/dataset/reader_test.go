package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFileCSV(t *testing.T) {
	path := writeTempFile(t, "sales.csv", "region,sales\nNorth,120\nSouth,95\n")

	f, err := ReadFile(path, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "sales"}, f.Columns())
	assert.Equal(t, 2, f.RowCount())

	sales, err := f.Numeric("sales")
	require.NoError(t, err)
	assert.Equal(t, []float64{120, 95}, sales)
}

func TestReadFileTSV(t *testing.T) {
	path := writeTempFile(t, "scores.tsv", "name\tscore\nalice\t3\nbob\t7\n")

	f, err := ReadFile(path, "tsv")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "score"}, f.Columns())
	names, err := f.Strings("name")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names)
}

func TestReadFileHeaderOnly(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "a,b\n")

	_, err := ReadFile(path, "csv")
	require.Error(t, err)
}

func TestReadFileUnsupportedType(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "hello")

	_, err := ReadFile(path, "")
	assert.Error(t, err)
}

func TestFromRowsPadsShortRows(t *testing.T) {
	f, err := fromRows([][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
		{"4", "5"},
	})
	require.NoError(t, err)
	col, err := f.Strings("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", ""}, col)
}
