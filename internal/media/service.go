package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pagehaven/go-builder/internal/logging"
	"github.com/pagehaven/go-builder/pkg/interfaces"
)

// Service handles media uploads for block content fields: avatars, hero
// images, file attachments. Objects are stored under a per-user prefix with
// a timestamped, random-suffixed name so keys never collide and never leak
// the original filename.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*Upload, error)
	Delete(ctx context.Context, url string) error
	URL(key string) string
}

// UploadInput describes one file upload. ReplacesURL, when set, points at
// the previously stored object for the same field; it is deleted best-effort
// after the new object is in place. FieldKey, when set, identifies the
// content field being written (for example "blockID/url"); concurrent
// uploads to the same key are sequenced and a stale one fails with
// ErrUploadSuperseded instead of clobbering a newer result.
type UploadInput struct {
	UserID      uuid.UUID
	Filename    string
	ContentType string
	Body        io.Reader
	Size        int64
	ReplacesURL string
	FieldKey    string
}

// Upload is the stored result.
type Upload struct {
	Key string
	URL string
}

var (
	ErrStoreRequired    = errors.New("media: object store required")
	ErrUserRequired     = errors.New("media: user id required")
	ErrBodyRequired     = errors.New("media: body required")
	ErrFileTooLarge     = errors.New("media: file too large")
	ErrUploadSuperseded = errors.New("media: upload superseded by a newer one")
)

// MaxUploadSize caps uploads at 10 MiB.
const MaxUploadSize = 10 << 20

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSuffix overrides the random suffix source (primarily for tests).
func WithSuffix(suffix func() string) ServiceOption {
	return func(s *service) {
		if suffix != nil {
			s.suffix = suffix
		}
	}
}

// WithLoggerProvider attaches the module logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) ServiceOption {
	return func(s *service) {
		s.logger = logging.MediaLogger(provider)
	}
}

type service struct {
	store    interfaces.ObjectStore
	sequence *FieldSequencer
	now      func() time.Time
	suffix   func() string
	logger   interfaces.Logger
}

// NewService constructs a media service instance.
func NewService(store interfaces.ObjectStore, opts ...ServiceOption) Service {
	if store == nil {
		panic(ErrStoreRequired)
	}

	s := &service{
		store:    store,
		sequence: NewFieldSequencer(),
		now:      time.Now,
		suffix:   randomSuffix,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*Upload, error) {
	if input.UserID == uuid.Nil {
		return nil, ErrUserRequired
	}
	if input.Body == nil {
		return nil, ErrBodyRequired
	}
	if input.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	var ticket uint64
	if input.FieldKey != "" {
		ticket = s.sequence.Begin(input.FieldKey)
	}

	key := s.objectKey(input.UserID, input.Filename)
	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := s.store.Put(ctx, key, contentType, input.Body, input.Size)
	if err != nil {
		return nil, fmt.Errorf("media: upload %s: %w", key, err)
	}

	// A slow upload finishing after a newer one for the same field drops
	// its result; the newer object stays authoritative.
	if input.FieldKey != "" && !s.sequence.Commit(input.FieldKey, ticket) {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete superseded upload", "key", key, "error", err)
		}
		s.logger.Debug("upload superseded", "field", input.FieldKey, "key", key)
		return nil, ErrUploadSuperseded
	}
	s.logger.Info("file uploaded", "key", key, "size", input.Size)

	// The replaced object is only cleaned up once the new one is live; a
	// failed delete leaves an orphan, never a broken page.
	if input.ReplacesURL != "" && input.ReplacesURL != url {
		if err := s.Delete(ctx, input.ReplacesURL); err != nil {
			s.logger.Warn("failed to delete replaced file", "url", input.ReplacesURL, "error", err)
		}
	}

	return &Upload{Key: key, URL: url}, nil
}

// Delete removes a stored object given its public URL. URLs from other
// origins are ignored.
func (s *service) Delete(ctx context.Context, url string) error {
	key := s.keyFromURL(url)
	if key == "" {
		return nil
	}
	return s.store.Delete(ctx, key)
}

func (s *service) URL(key string) string {
	return s.store.URL(key)
}

// objectKey builds "{userID}/{unixTS}-{suffix}{ext}". Only the extension of
// the original filename survives.
func (s *service) objectKey(userID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%d-%s%s", userID, s.now().UTC().Unix(), s.suffix(), ext)
}

// keyFromURL strips the store's base URL prefix. An empty result means the
// URL does not point into our store.
func (s *service) keyFromURL(url string) string {
	if url == "" {
		return ""
	}
	base := s.store.URL("")
	if base == "" || !strings.HasPrefix(url, base) {
		return ""
	}
	return strings.TrimPrefix(url, base)
}

func randomSuffix() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(buf)
}
