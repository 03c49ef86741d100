package filestorages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrFileAlreadyExists = errors.New("file already exists")
	ErrInvalidPath       = errors.New("invalid file path")
)

type PutResult struct {
	Path string
}

type PutOptions struct {
	AllowOverwrite bool
}

// FileStorage gives access to files on the local filesystem by path.
// Open transparently decompresses gzip and zstd content; Put publishes atomically.
//
//go:generate mockgen -source=file_storage.go -destination=./mocks/file_storage_mock.go -package=mocks
type FileStorage interface {
	Stat(ctx context.Context, path string) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Put(ctx context.Context, path string, r io.Reader, opts PutOptions) (*PutResult, error)
}

type fileStorage struct{}

func NewFileStorage() FileStorage {
	return &fileStorage{}
}

// Stat returns ErrFileNotFound when nothing exists at path.
func (s *fileStorage) Stat(ctx context.Context, path string) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		return err
	}
	return nil
}

func (s *fileStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	rc, err := newDecompressingReader(file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return rc, nil
}

func (s *fileStorage) Put(ctx context.Context, path string, r io.Reader, opts PutOptions) (*PutResult, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	if opts.AllowOverwrite {
		return s.putOverwrite(ctx, path, r)
	}
	return s.putNoOverwrite(ctx, path, r)
}

func validatePath(path string) error {
	if path == "" {
		return ErrInvalidPath
	}
	clean := filepath.Clean(path)
	if clean == "." || clean == string(filepath.Separator) {
		return ErrInvalidPath
	}
	return nil
}

// writeTemp copies r into a temp file next to finalPath and returns its name.
// The caller owns the returned file and must remove it when it is not published.
func writeTemp(ctx context.Context, finalPath string, r io.Reader) (string, error) {
	dir := filepath.Dir(finalPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	// CreateTemp uses 0600; published files get regular permissions.
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}

func (s *fileStorage) putOverwrite(ctx context.Context, path string, r io.Reader) (*PutResult, error) {
	finalPath := filepath.Clean(path)

	tmpPath, err := writeTemp(ctx, finalPath, r)
	if err != nil {
		return nil, err
	}

	// Atomic replace (POSIX)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return nil, err
	}

	return &PutResult{Path: path}, nil
}

func (s *fileStorage) putNoOverwrite(ctx context.Context, path string, r io.Reader) (*PutResult, error) {
	finalPath := filepath.Clean(path)

	tmpPath, err := writeTemp(ctx, finalPath, r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	// Atomic publish-if-not-exists
	if err := os.Link(tmpPath, finalPath); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrFileAlreadyExists
		}
		return nil, err
	}

	return &PutResult{Path: path}, nil
}
