package gcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/yungbote/parampara-backend/internal/platform/ctxutil"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type Speech interface {
	TranscribeAudioBytes(ctx context.Context, audio []byte, filename string, cfg SpeechConfig) (*SpeechResult, error)
	Close() error
}

type SpeechConfig struct {
	LanguageCode               string
	Model                      string
	EnableAutomaticPunctuation bool
	SampleRateHertz            int
	Encoding                   speechpb.RecognitionConfig_AudioEncoding
}

type SpeechResult struct {
	Provider        string  `json:"provider"`
	Text            string  `json:"text"`
	DurationSeconds float64 `json:"duration_seconds"`
	Confidence      float64 `json:"confidence"`
}

type speechService struct {
	log    *logger.Logger
	client *speech.Client
}

func NewSpeech(ctx context.Context, log *logger.Logger) (Speech, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	c, err := speech.NewClient(ctxutil.Default(ctx), ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	return &speechService{log: log.With("service", "gcp.Speech"), client: c}, nil
}

func (s *speechService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// TranscribeAudioBytes runs one LongRunningRecognize call and waits for it.
// Failures are returned as-is with the gRPC code in the message.
func (s *speechService) TranscribeAudioBytes(ctx context.Context, audio []byte, filename string, cfg SpeechConfig) (*SpeechResult, error) {
	if len(audio) == 0 {
		return &SpeechResult{Provider: "gcp_speech"}, nil
	}
	ctx, cancel := context.WithTimeout(ctxutil.Default(ctx), 3*time.Minute)
	defer cancel()

	req := &speechpb.LongRunningRecognizeRequest{
		Config: buildSpeechRecognitionConfig(filename, cfg),
		Audio:  &speechpb.RecognitionAudio{AudioSource: &speechpb.RecognitionAudio_Content{Content: audio}},
	}
	op, err := s.client.LongRunningRecognize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("speech longrunningrecognize (%s): %w", status.Code(err), err)
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		code := status.Code(err)
		if code == codes.DeadlineExceeded {
			s.log.Warn("speech recognition timed out", "filename", filename)
		}
		return nil, fmt.Errorf("speech wait (%s): %w", code, err)
	}
	return parseSpeechResponse(resp), nil
}

func buildSpeechRecognitionConfig(filename string, cfg SpeechConfig) *speechpb.RecognitionConfig {
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "hi-IN"
	}
	enc := cfg.Encoding
	if enc == speechpb.RecognitionConfig_ENCODING_UNSPECIFIED {
		enc = inferSpeechEncoding(filename)
	}
	rc := &speechpb.RecognitionConfig{
		LanguageCode:               cfg.LanguageCode,
		Model:                      cfg.Model,
		EnableAutomaticPunctuation: cfg.EnableAutomaticPunctuation,
		Encoding:                   enc,
	}
	if cfg.SampleRateHertz > 0 {
		rc.SampleRateHertz = int32(cfg.SampleRateHertz)
	}
	return rc
}

func inferSpeechEncoding(filename string) speechpb.RecognitionConfig_AudioEncoding {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return speechpb.RecognitionConfig_LINEAR16
	case ".flac":
		return speechpb.RecognitionConfig_FLAC
	case ".mp3":
		return speechpb.RecognitionConfig_MP3
	case ".ogg", ".opus":
		return speechpb.RecognitionConfig_OGG_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}

func parseSpeechResponse(resp *speechpb.LongRunningRecognizeResponse) *SpeechResult {
	out := &SpeechResult{Provider: "gcp_speech"}
	if resp == nil {
		return out
	}
	lines := make([]string, 0, len(resp.Results))
	var confSum float64
	var confN int
	for _, r := range resp.Results {
		if r == nil || len(r.Alternatives) == 0 || r.Alternatives[0] == nil {
			continue
		}
		alt := r.Alternatives[0]
		if t := strings.TrimSpace(alt.Transcript); t != "" {
			lines = append(lines, t)
		}
		if alt.Confidence > 0 {
			confSum += float64(alt.Confidence)
			confN++
		}
		if end := durToSec(r.ResultEndTime); end > out.DurationSeconds {
			out.DurationSeconds = end
		}
	}
	out.Text = strings.Join(lines, "\n")
	if confN > 0 {
		out.Confidence = confSum / float64(confN)
	}
	return out
}

func durToSec(d *durationpb.Duration) float64 {
	if d == nil {
		return 0
	}
	return float64(d.Seconds) + float64(d.Nanos)/1e9
}
