package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ondrasimku/signature-builder/internal/storage"
)

type LocalStorage struct {
	baseDir       string
	publicBaseURL string
}

// NewLocalStorage creates baseDir if needed so the service never starts
// without a place to write artifacts.
func NewLocalStorage(baseDir, publicBaseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &LocalStorage{
		baseDir:       baseDir,
		publicBaseURL: publicBaseURL,
	}, nil
}

func (s *LocalStorage) Dir() string {
	return s.baseDir
}

func (s *LocalStorage) Save(ctx context.Context, name string, r io.Reader, opts storage.SaveOptions) (storage.FileInfo, error) {
	if err := storage.ValidateName(name); err != nil {
		return storage.FileInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return storage.FileInfo{}, err
	}

	filePath := filepath.Join(s.baseDir, name)
	file, err := os.Create(filePath)
	if err != nil {
		return storage.FileInfo{}, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, r)
	if err != nil {
		os.Remove(filePath)
		return storage.FileInfo{}, fmt.Errorf("failed to write file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		return storage.FileInfo{}, fmt.Errorf("failed to stat file: %w", err)
	}

	return storage.FileInfo{
		Name:        name,
		Path:        filePath,
		ContentType: opts.ContentType,
		Size:        size,
		URL:         storage.PublicURL(s.publicBaseURL, name),
		ModTime:     stat.ModTime(),
	}, nil
}

func (s *LocalStorage) Open(ctx context.Context, name string) (io.ReadSeekCloser, storage.FileInfo, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, storage.FileInfo{}, err
	}

	filePath := filepath.Join(s.baseDir, name)
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.FileInfo{}, storage.ErrNotFound
		}
		return nil, storage.FileInfo{}, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, storage.FileInfo{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.IsDir() {
		file.Close()
		return nil, storage.FileInfo{}, storage.ErrNotFound
	}

	contentType := ""
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		contentType = "image/png"
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".webp":
		contentType = "image/webp"
	}

	info := storage.FileInfo{
		Name:        name,
		Path:        filePath,
		ContentType: contentType,
		Size:        stat.Size(),
		URL:         storage.PublicURL(s.publicBaseURL, name),
		ModTime:     stat.ModTime(),
	}

	return file, info, nil
}
