package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Hint carries what the uploader told us about the source.
type Hint struct {
	ScriptType string
	Language   string
}

// OCR turns a staged manuscript image into text.
type OCR interface {
	Name() string
	ExtractText(ctx context.Context, path string, filename string, hint Hint) (string, error)
}

// Transcriber turns a staged audio recording into text.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, path string, filename string, language string) (string, error)
}

// StubOCR returns a fixed placeholder naming the uploaded file.
type StubOCR struct{}

func (StubOCR) Name() string { return "stub" }

func (StubOCR) ExtractText(ctx context.Context, path string, filename string, hint Hint) (string, error) {
	return fmt.Sprintf("[OCR Extracted Text from %s]\nसंस्कृत श्लोक या प्राचीन पाठ यहाँ होगा...", displayName(filename)), nil
}

// StubTranscriber returns a fixed placeholder naming the uploaded file.
type StubTranscriber struct{}

func (StubTranscriber) Name() string { return "stub" }

func (StubTranscriber) Transcribe(ctx context.Context, path string, filename string, language string) (string, error) {
	return fmt.Sprintf("[Folk Song Transcription for %s]\nगीत के बोल यहाँ होंगे... (Transcribed lyrics would appear here)", displayName(filename)), nil
}

func displayName(filename string) string {
	if strings.TrimSpace(filename) == "" {
		return "upload"
	}
	return filename
}

func readStaged(path string, maxBytes int64) ([]byte, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat staged file: %w", err)
	}
	if maxBytes > 0 && st.Size() > maxBytes {
		return nil, fmt.Errorf("staged file %s is %d bytes (max %d)", filepath.Base(path), st.Size(), maxBytes)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read staged file: %w", err)
	}
	return b, nil
}
