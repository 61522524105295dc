package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ondrasimku/signature-builder/internal/avatar"
	"github.com/ondrasimku/signature-builder/internal/domain"
	"github.com/ondrasimku/signature-builder/internal/storage"
)

const (
	MessageNoFile       = "No file uploaded"
	MessageInvalidType  = "Only image files are allowed"
	MessageProcessing   = "Image processing failed"
	outputContentType   = "image/png"
	outputFileExtension = ".png"
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AllowedMIME reports whether contentType may be uploaded.
func AllowedMIME(contentType string) bool {
	return allowedMIME[contentType]
}

// Upload is one received file. Body is read at most once.
type Upload struct {
	Filename    string
	ContentType string
	// Size is the declared size, or -1 when the transport did not report it.
	Size int64
	Body io.Reader
}

type Service struct {
	storage  storage.Storage
	pipeline *avatar.Pipeline
	maxSize  int64
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Service)

// WithClock replaces the time source used for artifact names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store storage.Storage, pipeline *avatar.Pipeline, maxSize int64, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		storage:  store,
		pipeline: pipeline,
		maxSize:  maxSize,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) MaxSize() int64 {
	return s.maxSize
}

// TooLargeMessage is the client message for uploads over the limit.
func (s *Service) TooLargeMessage() string {
	return fmt.Sprintf("File too large. Max %s.", formatSize(s.maxSize))
}

// Create validates u, renders it and stores the artifact. Any error is an
// *Error.
func (s *Service) Create(ctx context.Context, u Upload) (domain.Artifact, error) {
	if u.Body == nil {
		return domain.Artifact{}, &Error{Kind: KindValidation, Message: MessageNoFile}
	}

	if !AllowedMIME(u.ContentType) {
		return domain.Artifact{}, &Error{
			Kind:    KindValidation,
			Message: MessageInvalidType,
			Err:     fmt.Errorf("content type %q not allowed", u.ContentType),
		}
	}

	if u.Size > s.maxSize {
		return domain.Artifact{}, s.tooLarge(u.Size)
	}

	src, err := io.ReadAll(io.LimitReader(u.Body, s.maxSize+1))
	if err != nil {
		return domain.Artifact{}, &Error{Kind: KindProcessing, Message: MessageProcessing, Err: fmt.Errorf("read upload: %w", err)}
	}
	if int64(len(src)) > s.maxSize {
		return domain.Artifact{}, s.tooLarge(int64(len(src)))
	}

	out, err := s.pipeline.Render(src)
	if err != nil {
		return domain.Artifact{}, &Error{Kind: KindProcessing, Message: MessageProcessing, Err: err}
	}

	name := ArtifactName(u.Filename, s.now())

	info, err := s.storage.Save(ctx, name, bytes.NewReader(out), storage.SaveOptions{
		ContentType: outputContentType,
		Size:        int64(len(out)),
	})
	if err != nil {
		return domain.Artifact{}, &Error{Kind: KindProcessing, Message: MessageProcessing, Err: fmt.Errorf("save %s: %w", name, err)}
	}

	s.logger.Debug("Artifact stored", "name", name, "bytes", info.Size, "sourceBytes", len(src))

	return domain.Artifact{
		Name:     info.Name,
		URL:      info.URL,
		Size:     s.pipeline.Options().Size,
		Bytes:    info.Size,
		Original: u.Filename,
	}, nil
}

func (s *Service) tooLarge(size int64) *Error {
	return &Error{
		Kind:    KindTooLarge,
		Message: s.TooLargeMessage(),
		Err:     fmt.Errorf("upload of %d bytes exceeds limit of %d", size, s.maxSize),
	}
}

func formatSize(n int64) string {
	const mb = 1 << 20
	const kb = 1 << 10
	switch {
	case n >= mb && n%mb == 0:
		return fmt.Sprintf("%dMB", n/mb)
	case n >= kb && n%kb == 0:
		return fmt.Sprintf("%dKB", n/kb)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
