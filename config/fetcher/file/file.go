package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher for a file on the local filesystem.
// Every Fetch reads the file again, so a reloading provider sees edits.
type Fetcher struct {
	filepath string
}

// NewFetcher returns a constructor function that creates a file Fetcher for fpath.
// The constructor checks that the file exists and is not a directory.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		err := checkFile(cleanPath)
		if err != nil {
			return nil, err
		}

		return &Fetcher{filepath: cleanPath}, nil
	}
}

// Path returns the cleaned file path.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Fetch reads the current contents of the file.
func (f *Fetcher) Fetch() ([]byte, error) {
	err := checkFile(f.filepath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.filepath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", f.filepath, err)
	}

	return data, nil
}

func checkFile(path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file %q: %w", path, err)
	}

	if stat.IsDir() {
		return fmt.Errorf("path %q: %w", path, ErrPathIsDirectory)
	}

	return nil
}
