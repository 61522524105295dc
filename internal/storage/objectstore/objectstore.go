package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ondrasimku/signature-builder/internal/storage"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

type ObjectStorage struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

func NewObjectStorage(ctx context.Context, cfg Config, publicBaseURL string) (*ObjectStorage, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("minio configuration incomplete")
	}

	endpoint, secure, err := normaliseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid minio endpoint: %w", err)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &ObjectStorage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL,
	}, nil
}

func (s *ObjectStorage) Save(ctx context.Context, name string, r io.Reader, opts storage.SaveOptions) (storage.FileInfo, error) {
	if err := storage.ValidateName(name); err != nil {
		return storage.FileInfo{}, err
	}

	size := opts.Size
	if size == 0 {
		size = -1
	}

	uploaded, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: opts.ContentType,
	})
	if err != nil {
		return storage.FileInfo{}, fmt.Errorf("failed to put object: %w", err)
	}

	return storage.FileInfo{
		Name:        name,
		Path:        s.bucket + "/" + name,
		ContentType: opts.ContentType,
		Size:        uploaded.Size,
		URL:         storage.PublicURL(s.publicBaseURL, name),
		ModTime:     uploaded.LastModified,
	}, nil
}

func (s *ObjectStorage) Open(ctx context.Context, name string) (io.ReadSeekCloser, storage.FileInfo, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, storage.FileInfo{}, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, storage.FileInfo{}, translateError(err)
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, storage.FileInfo{}, translateError(err)
	}

	info := storage.FileInfo{
		Name:        name,
		Path:        s.bucket + "/" + name,
		ContentType: stat.ContentType,
		Size:        stat.Size,
		URL:         storage.PublicURL(s.publicBaseURL, name),
		ModTime:     stat.LastModified,
	}

	return obj, info, nil
}

func translateError(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey" {
		return storage.ErrNotFound
	}
	return fmt.Errorf("failed to get object: %w", err)
}

func normaliseEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}

	// Accept either "minio:9000" or "http://minio:9000" / "https://minio:9000".
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, fmt.Errorf("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}

	return raw, false, nil
}
