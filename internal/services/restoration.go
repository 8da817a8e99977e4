package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/modules/heritage/normalize"
	"github.com/yungbote/parampara-backend/internal/modules/heritage/prompts"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/llm"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type RestoreInput struct {
	Text       string
	Language   string
	Context    string
	DocumentID string
}

type RestorationService interface {
	Restore(ctx context.Context, in RestoreInput) (normalize.Result[normalize.RestorationFallback], error)
}

type restorationService struct {
	log       *logger.Logger
	factory   llm.Factory
	model     llm.ModelSpec
	documents repos.DocumentRepo
}

func NewRestorationService(baseLog *logger.Logger, factory llm.Factory, model llm.ModelSpec, documents repos.DocumentRepo) RestorationService {
	return &restorationService{
		log:       baseLog.With("service", "RestorationService"),
		factory:   factory,
		model:     model,
		documents: documents,
	}
}

func (s *restorationService) Restore(ctx context.Context, in RestoreInput) (normalize.Result[normalize.RestorationFallback], error) {
	var zero normalize.Result[normalize.RestorationFallback]
	if strings.TrimSpace(in.Text) == "" {
		return zero, apierr.Validation("text is required")
	}
	if strings.TrimSpace(in.Language) == "" {
		return zero, apierr.Validation("language is required")
	}
	if in.DocumentID != "" {
		if err := requireDocument(ctx, s.documents, in.DocumentID); err != nil {
			return zero, err
		}
	}

	prompt, err := prompts.Restoration(in.Text, in.Language, in.Context)
	if err != nil {
		return zero, err
	}
	raw, err := askModel(ctx, s.log, s.factory, s.model, "restore", prompt)
	if err != nil {
		return zero, err
	}
	res := normalize.Object(raw, normalize.NewRestorationFallback)

	if in.DocumentID != "" {
		text, conf := restoredFields(res, raw)
		if err := s.documents.UpdateRestoration(ctx, in.DocumentID, text, conf); err != nil {
			return zero, fmt.Errorf("save restoration: %w", err)
		}
	}
	return res, nil
}

// restoredFields picks what is written back to the document. A structured reply
// without a usable restored_text keeps the raw reply; a missing confidence stays absent.
func restoredFields(res normalize.Result[normalize.RestorationFallback], raw string) (string, *float64) {
	if res.Kind == normalize.KindFallback {
		c := res.Fallback.Confidence
		return res.Fallback.RestoredText, &c
	}
	text := normalize.String(res.Fields, "restored_text")
	if text == "" {
		text = raw
	}
	if c, ok := normalize.Confidence(res.Fields, "confidence"); ok {
		return text, &c
	}
	return text, nil
}

// requireDocument turns an unknown id into the caller-facing 404.
func requireDocument(ctx context.Context, documents repos.DocumentRepo, id string) error {
	if documents == nil {
		return fmt.Errorf("document store not configured")
	}
	_, err := documents.GetByID(ctx, id)
	if errors.Is(err, apierr.ErrNotFound) {
		return apierr.NotFound("Document not found")
	}
	return err
}
