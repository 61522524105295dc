package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidName = errors.New("invalid file name")
)

type SaveOptions struct {
	ContentType string
	// Size is the number of bytes r will yield, or -1 when unknown.
	Size int64
}

type FileInfo struct {
	Name        string
	Path        string
	ContentType string
	Size        int64
	URL         string
	ModTime     time.Time
}

// Storage is a flat namespace of immutable artifacts. Saving an existing
// name replaces it.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, opts SaveOptions) (FileInfo, error)
	Open(ctx context.Context, name string) (io.ReadSeekCloser, FileInfo, error)
}

// ValidateName rejects names that would escape the flat namespace.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return ErrInvalidName
	}
	return nil
}

// PublicURL joins the public base URL with the artifact route.
func PublicURL(baseURL, name string) string {
	return strings.TrimSuffix(baseURL, "/") + "/images/" + name
}
