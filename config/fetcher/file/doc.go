// Package file provides a file-based config.DataFetcher.
//
// The file is checked at construction time and read again on every Fetch, so
// a document provider with a reload interval picks up edits without a restart:
//
//	fetcher, err := file.NewFetcher("/etc/app/config.yaml")()
//	if err != nil {
//	    // file not found, permission denied, path is a directory
//	}
//	data, err := fetcher.Fetch()
//
// Use errors.Is(err, file.ErrPathIsDirectory) to detect directory paths and
// errors.Is(err, fs.ErrNotExist) for a file removed after construction.
package file
