package filestorage

import (
	"context"
	"errors"
	"mime/multipart"
	"time"
)

// ErrInvalidPath is returned for paths that escape the storage root.
var ErrInvalidPath = errors.New("invalid storage path")

// FileInfo represents information about a stored file
type FileInfo struct {
	Name    string    // Base name within its directory
	Size    int64     // Size in bytes
	ModTime time.Time // Last modification
}

// FileStorage defines the interface for file storage operations. Paths are
// slash-separated and relative to the storage root, e.g. "fee/x.pdf".
type FileStorage interface {
	// Exists reports whether a regular file is stored at path.
	Exists(ctx context.Context, path string) (bool, error)

	// ReadFile returns the full contents of a stored file.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile stores data at path, creating parent directories. Readers
	// never observe a partially written file.
	WriteFile(ctx context.Context, path string, data []byte) error

	// Remove deletes a file. Removing a missing file is not an error.
	Remove(ctx context.Context, path string) error

	// List returns the regular files directly inside dir.
	List(ctx context.Context, dir string) ([]FileInfo, error)

	// SaveFileWithPath stores an uploaded file in subPath and returns the
	// generated filename.
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)
}
