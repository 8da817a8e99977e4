package mediastore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yungbote/parampara-backend/internal/platform/gcp"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

// Archive keeps uploaded media beyond the lifetime of the staged temp file.
// Put returns a URI that is stored on the owning record. Delete undoes a Put
// whose record was never written; deleting a missing key succeeds.
type Archive interface {
	Kind() string
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// Key builds "<prefix>/<id>_<name>" with a slash-free name.
func Key(prefix, id, filename string) string {
	name := strings.ReplaceAll(filepath.Base(strings.ReplaceAll(filename, "\\", "/")), " ", "_")
	if name == "" || name == "." || name == "/" {
		name = "media"
	}
	return path.Join(prefix, id+"_"+name)
}

type local struct {
	log  *logger.Logger
	root string
}

func NewLocal(log *logger.Logger, root string) (Archive, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("local media archive: root required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("local media archive: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("local media archive: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &local{log: log.With("service", "mediastore.Local"), root: abs}, nil
}

func (l *local) Kind() string { return "local" }

func (l *local) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(path.Clean("/"+key)))
}

func (l *local) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	dst := l.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("archive dir: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("archive create: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("archive write: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("archive close: %w", err)
	}
	l.log.Debug("media archived", "path", dst)
	return "file://" + filepath.ToSlash(dst), nil
}

func (l *local) Delete(ctx context.Context, key string) error {
	if err := os.Remove(l.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("archive delete: %w", err)
	}
	return nil
}

type gcs struct {
	bucket gcp.Bucket
}

func NewGCS(bucket gcp.Bucket) (Archive, error) {
	if bucket == nil {
		return nil, fmt.Errorf("gcs media archive: bucket required")
	}
	return &gcs{bucket: bucket}, nil
}

func (g *gcs) Kind() string { return "gcs" }

func (g *gcs) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	return g.bucket.Upload(ctx, key, r)
}

func (g *gcs) Delete(ctx context.Context, key string) error {
	return g.bucket.Delete(ctx, key)
}

// None discards media; records keep an empty audio_path.
type None struct{}

func (None) Kind() string { return "none" }

func (None) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	return "", nil
}

func (None) Delete(ctx context.Context, key string) error { return nil }
