package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/parampara-backend/internal/platform/ctxutil"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

// Bucket writes objects into a single GCS bucket.
type Bucket interface {
	Name() string
	Upload(ctx context.Context, key string, r io.Reader) (uri string, err error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context) error
	Close() error
}

type bucket struct {
	log    *logger.Logger
	client *storage.Client
	name   string
}

func NewBucket(ctx context.Context, log *logger.Logger, name string, cfg ObjectStorageConfig) (Bucket, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("bucket name required")
	}
	if err := ValidateObjectStorageConfig(cfg); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	client, err := newStorageClient(ctxutil.Default(ctx), cfg)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	log = log.With("service", "gcp.Bucket", "bucket", name)
	log.Info("object storage initialized", "mode", cfg.Mode, "emulator_host", cfg.EmulatorHost)
	return &bucket{log: log, client: client, name: name}, nil
}

func newStorageClient(ctx context.Context, cfg ObjectStorageConfig) (*storage.Client, error) {
	if cfg.IsEmulatorMode() {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", cfg.EmulatorHost)
		return storage.NewClient(ctx, option.WithoutAuthentication())
	}
	opts := append(ClientOptionsFromEnv(), option.WithScopes(storage.ScopeReadWrite))
	return storage.NewClient(ctx, opts...)
}

func (b *bucket) Name() string { return b.name }

func (b *bucket) Upload(ctx context.Context, key string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctxutil.Default(ctx), 2*time.Minute)
	defer cancel()

	w := b.client.Bucket(b.name).Object(key).NewWriter(ctx)
	if ct := ContentTypeForKey(key); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write gcs object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close gcs writer: %w", err)
	}
	return fmt.Sprintf("gs://%s/%s", b.name, key), nil
}

// Delete removes key. A missing object is not an error.
func (b *bucket) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctxutil.Default(ctx), 30*time.Second)
	defer cancel()
	err := b.client.Bucket(b.name).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete gcs object: %w", err)
	}
	return nil
}

// Exists checks that the bucket is reachable with the current credentials.
func (b *bucket) Exists(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctxutil.Default(ctx), 10*time.Second)
	defer cancel()
	if _, err := b.client.Bucket(b.name).Attrs(ctx); err != nil {
		return fmt.Errorf("bucket %s: %w", b.name, err)
	}
	return nil
}

func (b *bucket) Close() error {
	if b == nil || b.client == nil {
		return nil
	}
	return b.client.Close()
}

func ContentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	switch {
	case strings.HasSuffix(s, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(s, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(s, ".flac"):
		return "audio/flac"
	case strings.HasSuffix(s, ".ogg"), strings.HasSuffix(s, ".opus"):
		return "audio/ogg"
	case strings.HasSuffix(s, ".m4a"):
		return "audio/mp4"
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(s, ".tif"), strings.HasSuffix(s, ".tiff"):
		return "image/tiff"
	case strings.HasSuffix(s, ".pdf"):
		return "application/pdf"
	default:
		return ""
	}
}
