package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/parampara-backend/internal/platform/gcp"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/platform/mediastore"
)

var newBucket = gcp.NewBucket

type ArchiveBootstrapErrorCode string

const (
	ArchiveBootstrapErrorInvalidMode   ArchiveBootstrapErrorCode = "invalid_mode"
	ArchiveBootstrapErrorMissingBucket ArchiveBootstrapErrorCode = "missing_bucket"
	ArchiveBootstrapErrorStorageConfig ArchiveBootstrapErrorCode = "storage_config"
	ArchiveBootstrapErrorConnectFailed ArchiveBootstrapErrorCode = "connect_failed"
)

type ArchiveBootstrapError struct {
	Code  ArchiveBootstrapErrorCode
	Mode  string
	Cause error
}

func (e *ArchiveBootstrapError) Error() string {
	if e == nil {
		return "audio archive bootstrap failed"
	}
	return fmt.Sprintf("audio archive bootstrap failed (code=%s mode=%q): %v", e.Code, e.Mode, e.Cause)
}

func (e *ArchiveBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveAudioArchive picks where uploaded folk-song audio is kept: a local
// directory, a GCS bucket, or nowhere. The bucket is returned so it can be closed.
func resolveAudioArchive(ctx context.Context, log *logger.Logger, cfg Config) (mediastore.Archive, gcp.Bucket, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.AudioStore))
	log.Info("Selecting audio archive", "mode", mode)

	switch mode {
	case "none":
		return mediastore.None{}, nil, nil
	case "", "local":
		archive, err := mediastore.NewLocal(log, cfg.AudioArchiveDir)
		if err != nil {
			return nil, nil, &ArchiveBootstrapError{Code: ArchiveBootstrapErrorConnectFailed, Mode: "local", Cause: err}
		}
		return archive, nil, nil
	case "gcs":
	default:
		err := &ArchiveBootstrapError{
			Code:  ArchiveBootstrapErrorInvalidMode,
			Mode:  mode,
			Cause: fmt.Errorf("unsupported AUDIO_STORE %q (want local, gcs or none)", cfg.AudioStore),
		}
		log.Error("Audio archive selection failed", "mode", mode, "error_code", err.Code, "error", err)
		return nil, nil, err
	}

	if strings.TrimSpace(cfg.AudioGCSBucket) == "" {
		return nil, nil, &ArchiveBootstrapError{
			Code:  ArchiveBootstrapErrorMissingBucket,
			Mode:  mode,
			Cause: errors.New("AUDIO_STORE=gcs requires AUDIO_GCS_BUCKET"),
		}
	}
	storageCfg, err := gcp.ResolveObjectStorageConfigFromEnv()
	if err != nil {
		return nil, nil, &ArchiveBootstrapError{Code: ArchiveBootstrapErrorStorageConfig, Mode: mode, Cause: err}
	}
	bucket, err := newBucket(ctx, log, cfg.AudioGCSBucket, storageCfg)
	if err != nil {
		classified := &ArchiveBootstrapError{Code: ArchiveBootstrapErrorConnectFailed, Mode: mode, Cause: err}
		log.Error("Audio archive bootstrap failed",
			"mode", mode,
			"bucket", cfg.AudioGCSBucket,
			"storage_mode", storageCfg.Mode,
			"error_code", classified.Code,
			"error", err,
		)
		return nil, nil, classified
	}
	archive, err := mediastore.NewGCS(bucket)
	if err != nil {
		_ = bucket.Close()
		return nil, nil, &ArchiveBootstrapError{Code: ArchiveBootstrapErrorConnectFailed, Mode: mode, Cause: err}
	}
	return archive, bucket, nil
}
