// Package memory keeps artifacts in process memory. Contents are lost on
// restart.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ondrasimku/signature-builder/internal/storage"
)

type object struct {
	data        []byte
	contentType string
	modTime     time.Time
}

type MemoryStorage struct {
	publicBaseURL string

	mu      sync.RWMutex
	objects map[string]object
	writes  map[string]int
}

func NewMemoryStorage(publicBaseURL string) *MemoryStorage {
	return &MemoryStorage{
		publicBaseURL: publicBaseURL,
		objects:       make(map[string]object),
		writes:        make(map[string]int),
	}
}

func (s *MemoryStorage) Save(ctx context.Context, name string, r io.Reader, opts storage.SaveOptions) (storage.FileInfo, error) {
	if err := storage.ValidateName(name); err != nil {
		return storage.FileInfo{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return storage.FileInfo{}, fmt.Errorf("failed to read data: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return storage.FileInfo{}, err
	}

	obj := object{data: data, contentType: opts.ContentType, modTime: time.Now()}

	s.mu.Lock()
	s.objects[name] = obj
	s.writes[name]++
	s.mu.Unlock()

	return s.info(name, obj), nil
}

func (s *MemoryStorage) Open(ctx context.Context, name string) (io.ReadSeekCloser, storage.FileInfo, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, storage.FileInfo{}, err
	}

	s.mu.RLock()
	obj, ok := s.objects[name]
	s.mu.RUnlock()
	if !ok {
		return nil, storage.FileInfo{}, storage.ErrNotFound
	}

	return readSeekNopCloser{bytes.NewReader(obj.data)}, s.info(name, obj), nil
}

// Len reports how many distinct names are stored.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Writes reports how many times name has been saved, overwrites included.
func (s *MemoryStorage) Writes(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes[name]
}

func (s *MemoryStorage) info(name string, obj object) storage.FileInfo {
	return storage.FileInfo{
		Name:        name,
		ContentType: obj.contentType,
		Size:        int64(len(obj.data)),
		URL:         storage.PublicURL(s.publicBaseURL, name),
		ModTime:     obj.modTime,
	}
}

type readSeekNopCloser struct {
	*bytes.Reader
}

func (readSeekNopCloser) Close() error { return nil }
