package app

import (
	"context"
	"fmt"

	"github.com/yungbote/parampara-backend/internal/ingestion/extractor"
	"github.com/yungbote/parampara-backend/internal/platform/embeddings"
	"github.com/yungbote/parampara-backend/internal/platform/gcp"
	"github.com/yungbote/parampara-backend/internal/platform/llm"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/platform/mediastore"
)

type Clients struct {
	LLM         llm.Factory
	Embedder    embeddings.Embedder
	OCR         extractor.OCR
	Transcriber extractor.Transcriber
	Archive     mediastore.Archive

	gcpVision gcp.Vision
	gcpSpeech gcp.Speech
	gcpBucket gcp.Bucket
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (*Clients, error) {
	log.Info("Wiring clients...")
	c := &Clients{}

	// LLM
	c.LLM = llm.NewFactory(log, llm.Config{
		APIKey:  cfg.LLMKey,
		BaseURL: cfg.LLMBaseURL,
		Timeout: cfg.LLMTimeout,
	})

	// Embeddings
	switch cfg.EmbeddingsBackend {
	case "", "local":
		c.Embedder = embeddings.NewLocal(cfg.EmbeddingsDimension)
	case "remote":
		remote, err := embeddings.NewRemote(log, embeddings.RemoteConfig{
			BaseURL:   cfg.EmbeddingsBaseURL,
			APIKey:    cfg.LLMKey,
			Model:     cfg.EmbeddingsModel,
			Dimension: cfg.EmbeddingsDimension,
			Timeout:   cfg.LLMTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("init remote embeddings: %w", err)
		}
		c.Embedder = remote
	default:
		return nil, fmt.Errorf("unknown EMBEDDINGS_BACKEND %q (want local or remote)", cfg.EmbeddingsBackend)
	}

	// OCR
	switch cfg.OCRBackend {
	case "", "stub":
		c.OCR = extractor.StubOCR{}
	case "gcp":
		vision, err := gcp.NewVision(ctx, log)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("init vision client: %w", err)
		}
		c.gcpVision = vision
		if c.OCR, err = extractor.NewVisionOCR(log, vision); err != nil {
			c.Close()
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown OCR_BACKEND %q (want stub or gcp)", cfg.OCRBackend)
	}

	// Speech
	switch cfg.SpeechBackend {
	case "", "stub":
		c.Transcriber = extractor.StubTranscriber{}
	case "gcp":
		speech, err := gcp.NewSpeech(ctx, log)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("init speech client: %w", err)
		}
		c.gcpSpeech = speech
		if c.Transcriber, err = extractor.NewSpeechTranscriber(log, speech); err != nil {
			c.Close()
			return nil, err
		}
	default:
		c.Close()
		return nil, fmt.Errorf("unknown SPEECH_BACKEND %q (want stub or gcp)", cfg.SpeechBackend)
	}

	// Audio archive
	archive, bucket, err := resolveAudioArchive(ctx, log, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Archive, c.gcpBucket = archive, bucket

	log.Info("clients ready",
		"llm_configured", c.LLM.Configured(),
		"embeddings", c.Embedder.Name(),
		"ocr", c.OCR.Name(),
		"speech", c.Transcriber.Name(),
		"audio_archive", c.Archive.Kind(),
	)
	return c, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.gcpBucket != nil {
		_ = c.gcpBucket.Close()
	}
	if c.gcpSpeech != nil {
		_ = c.gcpSpeech.Close()
	}
	if c.gcpVision != nil {
		_ = c.gcpVision.Close()
	}
}
