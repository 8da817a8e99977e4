package app

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/yungbote/parampara-backend/internal/platform/gcp"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type fakeBucket struct {
	name   string
	closed bool
}

func (b *fakeBucket) Name() string { return b.name }
func (b *fakeBucket) Upload(ctx context.Context, key string, r io.Reader) (string, error) {
	return "gs://" + b.name + "/" + key, nil
}
func (b *fakeBucket) Delete(ctx context.Context, key string) error { return nil }
func (b *fakeBucket) Exists(ctx context.Context) error              { return nil }
func (b *fakeBucket) Close() error {
	b.closed = true
	return nil
}

func withBucketFactory(t *testing.T, fn func(ctx context.Context, log *logger.Logger, name string, cfg gcp.ObjectStorageConfig) (gcp.Bucket, error)) {
	t.Helper()
	prev := newBucket
	newBucket = fn
	t.Cleanup(func() { newBucket = prev })
}

func archiveCode(t *testing.T, err error) ArchiveBootstrapErrorCode {
	t.Helper()
	var got *ArchiveBootstrapError
	if !errors.As(err, &got) {
		t.Fatalf("expected ArchiveBootstrapError, got=%T (%v)", err, err)
	}
	return got.Code
}

func TestResolveAudioArchiveLocalAndNone(t *testing.T) {
	archive, bucket, err := resolveAudioArchive(context.Background(), logger.Nop(), Config{
		AudioStore:      "local",
		AudioArchiveDir: filepath.Join(t.TempDir(), "audio"),
	})
	if err != nil || bucket != nil || archive.Kind() != "local" {
		t.Fatalf("local: archive=%v bucket=%v err=%v", archive, bucket, err)
	}

	archive, _, err = resolveAudioArchive(context.Background(), logger.Nop(), Config{AudioStore: "none"})
	if err != nil || archive.Kind() != "none" {
		t.Fatalf("none: archive=%v err=%v", archive, err)
	}
}

func TestResolveAudioArchiveInvalidMode(t *testing.T) {
	_, _, err := resolveAudioArchive(context.Background(), logger.Nop(), Config{AudioStore: "s3"})
	if code := archiveCode(t, err); code != ArchiveBootstrapErrorInvalidMode {
		t.Fatalf("code: want=%q got=%q", ArchiveBootstrapErrorInvalidMode, code)
	}
}

func TestResolveAudioArchiveGCSRequiresBucket(t *testing.T) {
	_, _, err := resolveAudioArchive(context.Background(), logger.Nop(), Config{AudioStore: "gcs"})
	if code := archiveCode(t, err); code != ArchiveBootstrapErrorMissingBucket {
		t.Fatalf("code: want=%q got=%q", ArchiveBootstrapErrorMissingBucket, code)
	}
}

func TestResolveAudioArchiveGCS(t *testing.T) {
	t.Setenv("OBJECT_STORAGE_MODE", "")
	t.Setenv("STORAGE_EMULATOR_HOST", "")
	fb := &fakeBucket{name: "heritage-audio"}
	withBucketFactory(t, func(ctx context.Context, log *logger.Logger, name string, cfg gcp.ObjectStorageConfig) (gcp.Bucket, error) {
		if name != "heritage-audio" || cfg.Mode != gcp.ObjectStorageModeGCS {
			t.Fatalf("unexpected bucket request name=%q cfg=%+v", name, cfg)
		}
		return fb, nil
	})

	archive, bucket, err := resolveAudioArchive(context.Background(), logger.Nop(), Config{AudioStore: "gcs", AudioGCSBucket: "heritage-audio"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if archive.Kind() != "gcs" || bucket != fb {
		t.Fatalf("unexpected archive %v bucket %v", archive.Kind(), bucket)
	}
}

func TestResolveAudioArchiveGCSConnectFailed(t *testing.T) {
	t.Setenv("OBJECT_STORAGE_MODE", "")
	t.Setenv("STORAGE_EMULATOR_HOST", "")
	withBucketFactory(t, func(ctx context.Context, log *logger.Logger, name string, cfg gcp.ObjectStorageConfig) (gcp.Bucket, error) {
		return nil, errors.New("dial failed")
	})
	_, _, err := resolveAudioArchive(context.Background(), logger.Nop(), Config{AudioStore: "gcs", AudioGCSBucket: "b"})
	if code := archiveCode(t, err); code != ArchiveBootstrapErrorConnectFailed {
		t.Fatalf("code: want=%q got=%q", ArchiveBootstrapErrorConnectFailed, code)
	}
}

func TestResolveAudioArchiveBadStorageMode(t *testing.T) {
	t.Setenv("OBJECT_STORAGE_MODE", "gcs_emulator")
	t.Setenv("STORAGE_EMULATOR_HOST", "")
	_, _, err := resolveAudioArchive(context.Background(), logger.Nop(), Config{AudioStore: "gcs", AudioGCSBucket: "b"})
	if code := archiveCode(t, err); code != ArchiveBootstrapErrorStorageConfig {
		t.Fatalf("code: want=%q got=%q", ArchiveBootstrapErrorStorageConfig, code)
	}
}
