package gcp

import (
	"context"
	"fmt"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/yungbote/parampara-backend/internal/platform/ctxutil"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type Vision interface {
	OCRImageBytes(ctx context.Context, img []byte, languageHints []string) (*VisionOCRResult, error)
	Close() error
}

type VisionOCRResult struct {
	Provider   string  `json:"provider"`
	Text       string  `json:"text"`
	Pages      int     `json:"pages"`
	Confidence float64 `json:"confidence"`
}

type visionService struct {
	log    *logger.Logger
	client *vision.ImageAnnotatorClient
}

func NewVision(ctx context.Context, log *logger.Logger) (Vision, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	c, err := vision.NewImageAnnotatorClient(ctxutil.Default(ctx), ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &visionService{log: log.With("service", "gcp.Vision"), client: c}, nil
}

func (s *visionService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// OCRImageBytes runs DOCUMENT_TEXT_DETECTION on a single image. Line breaks are
// kept since manuscript verses are line oriented.
func (s *visionService) OCRImageBytes(ctx context.Context, img []byte, languageHints []string) (*VisionOCRResult, error) {
	out := &VisionOCRResult{Provider: "gcp_vision"}
	if len(img) == 0 {
		return out, nil
	}
	ctx, cancel := context.WithTimeout(ctxutil.Default(ctx), 60*time.Second)
	defer cancel()

	req := &visionpb.AnnotateImageRequest{
		Image:    &visionpb.Image{Content: img},
		Features: []*visionpb.Feature{{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION}},
	}
	if len(languageHints) > 0 {
		req.ImageContext = &visionpb.ImageContext{LanguageHints: languageHints}
	}
	resp, err := s.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{req},
	})
	if err != nil {
		return nil, fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return out, nil
	}
	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return nil, fmt.Errorf("vision annotate error: %s", r0.Error.Message)
	}
	fta := r0.FullTextAnnotation
	if fta == nil {
		return out, nil
	}
	out.Text = keepLines(fta.Text)
	out.Pages = len(fta.Pages)
	out.Confidence = avgPageConfidence(fta.Pages)
	s.log.Debug("vision ocr", "pages", out.Pages, "chars", len(out.Text), "confidence", out.Confidence)
	return out, nil
}

func avgPageConfidence(pages []*visionpb.Page) float64 {
	var sum float64
	var n int
	for _, p := range pages {
		if p == nil {
			continue
		}
		for _, b := range p.Blocks {
			if b == nil {
				continue
			}
			sum += float64(b.Confidence)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
