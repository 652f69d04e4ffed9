package connectors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDiscoverFiles_FiltersByExtensionAndDepth(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), "x\n1\n")
	writeFile(t, filepath.Join(dir, "b.CSV"), "x\n1\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "hello")
	writeFile(t, filepath.Join(dir, "nested", "c.csv"), "x\n1\n")

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.csv", filepath.Base(files[0].Path))
	assert.Equal(t, "b.CSV", filepath.Base(files[1].Path))

	files, err = DiscoverFiles(dir, ".csv", DiscoveryOptions{Recursive: true})
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestDiscoverFiles_SizeFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "small.csv"), "x\n")
	writeFile(t, filepath.Join(dir, "large.csv"), "x\n1\n2\n3\n4\n5\n")

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{MinSize: 5})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "large.csv", filepath.Base(files[0].Path))
}

func TestDiscoverFiles_Metadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "winequality-red.csv")
	writeFile(t, path, "x\n1\n")
	info, err := os.Stat(path)
	require.NoError(t, err)

	files, err := DiscoverFiles(dir, "csv", DiscoveryOptions{})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, FileMeta{Path: path, Size: 4, Modified: info.ModTime()}, files[0])
}

func TestDiscoverFiles_Errors(t *testing.T) {
	_, err := DiscoverFiles("", "csv", DiscoveryOptions{})
	assert.Error(t, err)

	_, err = DiscoverFiles(filepath.Join(t.TempDir(), "missing"), "csv", DiscoveryOptions{})
	assert.ErrorContains(t, err, "does not exist")

	dir := t.TempDir()
	_, err = DiscoverFiles(dir, "", DiscoveryOptions{})
	assert.ErrorContains(t, err, "extension")

	_, err = DiscoverFiles(dir, "csv", DiscoveryOptions{})
	assert.ErrorContains(t, err, "no matching files")
}

func TestDiscoverDatasets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "winequality-red.csv"), "x\n1\n")
	writeFile(t, filepath.Join(dir, "winequality-white.csv"), "x\n1\n")
	writeFile(t, filepath.Join(dir, "other.csv"), "x\n1\n")

	found, err := DiscoverDatasets(dir)
	require.NoError(t, err)
	assert.Equal(t, "winequality-red.csv", filepath.Base(found[Red].Path))
	assert.Equal(t, "winequality-white.csv", filepath.Base(found[White].Path))
}

func TestDiscoverDatasets_MissingVariant(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "winequality-red.csv"), "x\n1\n")

	_, err := DiscoverDatasets(dir)
	assert.ErrorContains(t, err, "no white wine dataset")
}

func TestDiscoverDatasets_Duplicate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "winequality-red.csv"), "x\n1\n")
	writeFile(t, filepath.Join(dir, "wine_red.csv"), "x\n1\n")
	writeFile(t, filepath.Join(dir, "winequality-white.csv"), "x\n1\n")

	_, err := DiscoverDatasets(dir)
	assert.ErrorContains(t, err, "multiple red datasets")
}

func TestVariantTitle(t *testing.T) {
	assert.Equal(t, "Red", Red.Title())
	assert.Equal(t, "White", White.Title())
	assert.Equal(t, "", Variant("").Title())
}
