package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/parampara-backend/internal/platform/gcp"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

const (
	maxImageBytes = 20 << 20
	maxAudioBytes = 10 << 20
)

// VisionOCR runs document text detection on the staged image.
type VisionOCR struct {
	log    *logger.Logger
	vision gcp.Vision
}

func NewVisionOCR(log *logger.Logger, v gcp.Vision) (*VisionOCR, error) {
	if v == nil {
		return nil, fmt.Errorf("vision client required")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &VisionOCR{log: log.With("extractor", "VisionOCR"), vision: v}, nil
}

func (o *VisionOCR) Name() string { return "gcp_vision" }

func (o *VisionOCR) ExtractText(ctx context.Context, path string, filename string, hint Hint) (string, error) {
	img, err := readStaged(path, maxImageBytes)
	if err != nil {
		return "", err
	}
	res, err := o.vision.OCRImageBytes(ctx, img, OCRHints(hint.Language))
	if err != nil {
		return "", fmt.Errorf("ocr %s: %w", filename, err)
	}
	text := strings.TrimSpace(res.Text)
	if text == "" {
		o.log.Warn("ocr produced no text", "filename", filename, "script_type", hint.ScriptType)
	}
	return text, nil
}

// SpeechTranscriber runs synchronous-wait recognition on the staged recording.
type SpeechTranscriber struct {
	log    *logger.Logger
	speech gcp.Speech
}

func NewSpeechTranscriber(log *logger.Logger, s gcp.Speech) (*SpeechTranscriber, error) {
	if s == nil {
		return nil, fmt.Errorf("speech client required")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SpeechTranscriber{log: log.With("extractor", "SpeechTranscriber"), speech: s}, nil
}

func (t *SpeechTranscriber) Name() string { return "gcp_speech" }

func (t *SpeechTranscriber) Transcribe(ctx context.Context, path string, filename string, language string) (string, error) {
	audio, err := readStaged(path, maxAudioBytes)
	if err != nil {
		return "", err
	}
	res, err := t.speech.TranscribeAudioBytes(ctx, audio, filename, gcp.SpeechConfig{
		LanguageCode:               SpeechLanguageCode(language),
		EnableAutomaticPunctuation: true,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", filename, err)
	}
	t.log.Debug("transcribed", "filename", filename, "seconds", res.DurationSeconds, "confidence", res.Confidence)
	return strings.TrimSpace(res.Text), nil
}
