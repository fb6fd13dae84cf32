package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/braxton0054/eavisystem/internal/pkg/helpers"
	"github.com/braxton0054/eavisystem/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	now      func() time.Time
}

var _ FileStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage instance rooted at basePath,
// creating the directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		now:      time.Now,
	}, nil
}

// resolve maps a storage path to a filesystem path inside basePath.
func (ls *LocalStorage) resolve(path string) (string, error) {
	clean := filepath.FromSlash(strings.TrimPrefix(path, "/"))
	if clean == "" || !filepath.IsLocal(clean) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return filepath.Join(ls.basePath, clean), nil
}

// Exists reports whether a regular file is stored at path.
func (ls *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	full, err := ls.resolve(path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

// ReadFile returns the contents of a stored file. A missing file yields an
// error matching fs.ErrNotExist.
func (ls *LocalStorage) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := ls.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

// WriteFile writes data to a temporary file next to the destination and
// renames it into place.
func (ls *LocalStorage) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := ls.resolve(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, ".tmp-"+uuid.New().String())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written")
	return nil
}

// Remove deletes a stored file.
func (ls *LocalStorage) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := ls.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error().Err(err).Str("path", full).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// List returns the regular files in dir sorted by name. Hidden files,
// including in-flight temporary files, are skipped. A missing directory
// lists as empty.
func (ls *LocalStorage) List(ctx context.Context, dir string) ([]FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := ls.resolve(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(full)
	if errors.Is(err, fs.ErrNotExist) {
		return []FileInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{Name: e.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// SaveFileWithPath saves an uploaded file to a subdirectory under a name of
// the form <unix seconds>_<sanitized original name><ext>.
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	base := filepath.Base(fileHeader.Filename)
	ext := strings.ToLower(filepath.Ext(base))
	filename := strconv.FormatInt(ls.now().Unix(), 10) + "_" +
		helpers.SanitizeFilename(strings.TrimSuffix(base, filepath.Ext(base))) + ext

	if err := ls.WriteFile(context.Background(), filepath.ToSlash(filepath.Join(subPath, filename)), data); err != nil {
		return "", err
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", filename).Msg("File saved successfully")
	return filename, nil
}
