package file

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)

	err := os.WriteFile(path, content, 0o600)
	require.NoError(t, err)

	return path
}

func TestFetcher_Fetch_Success(t *testing.T) {
	t.Parallel()

	content := []byte(`{"General": {"AppName": "demo"}}`)
	configPath := writeFile(t, "config.json", content)

	fetcher, err := NewFetcher(configPath)()
	require.NoError(t, err)
	assert.Equal(t, configPath, fetcher.Path())

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestFetcher_Fetch_FileNotFound(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher("/nonexistent/path/config.yaml")()

	require.Error(t, err)
	assert.Nil(t, fetcher)
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestFetcher_Fetch_EmptyFile(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(writeFile(t, "empty.yaml", []byte{}))()
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestNewFetcher_DirectoryPath(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(t.TempDir())()

	require.ErrorIs(t, err, ErrPathIsDirectory)
	assert.Nil(t, fetcher)
}

func TestNewFetcher_CleansPath(t *testing.T) {
	t.Parallel()

	configPath := writeFile(t, "config.yaml", []byte("a: 1"))
	dirty := filepath.Join(filepath.Dir(configPath), ".", "config.yaml")

	fetcher, err := NewFetcher(dirty)()
	require.NoError(t, err)
	assert.Equal(t, configPath, fetcher.Path())
}

func TestFetcher_Fetch_SeesModifications(t *testing.T) {
	t.Parallel()

	configPath := writeFile(t, "config.yaml", []byte(`version: "1.0"`))

	fetcher, err := NewFetcher(configPath)()
	require.NoError(t, err)

	modified := []byte(`version: "2.0"`)

	err = os.WriteFile(configPath, modified, 0o600)
	require.NoError(t, err)

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, modified, data)
}

func TestFetcher_Fetch_FileRemoved(t *testing.T) {
	t.Parallel()

	configPath := writeFile(t, "config.yaml", []byte("a: 1"))

	fetcher, err := NewFetcher(configPath)()
	require.NoError(t, err)

	require.NoError(t, os.Remove(configPath))

	_, err = fetcher.Fetch()
	require.ErrorIs(t, err, fs.ErrNotExist)
}
