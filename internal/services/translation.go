package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/modules/heritage/normalize"
	"github.com/yungbote/parampara-backend/internal/modules/heritage/prompts"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/llm"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type TranslateInput struct {
	Text           string
	SourceLanguage string
	TargetLanguage string
	DocumentID     string
}

type TranslationService interface {
	Translate(ctx context.Context, in TranslateInput) (normalize.Result[normalize.TranslationFallback], error)
}

type translationService struct {
	log       *logger.Logger
	factory   llm.Factory
	model     llm.ModelSpec
	documents repos.DocumentRepo
}

func NewTranslationService(baseLog *logger.Logger, factory llm.Factory, model llm.ModelSpec, documents repos.DocumentRepo) TranslationService {
	return &translationService{
		log:       baseLog.With("service", "TranslationService"),
		factory:   factory,
		model:     model,
		documents: documents,
	}
}

func (s *translationService) Translate(ctx context.Context, in TranslateInput) (normalize.Result[normalize.TranslationFallback], error) {
	var zero normalize.Result[normalize.TranslationFallback]
	switch {
	case strings.TrimSpace(in.Text) == "":
		return zero, apierr.Validation("text is required")
	case strings.TrimSpace(in.SourceLanguage) == "":
		return zero, apierr.Validation("source_language is required")
	case strings.TrimSpace(in.TargetLanguage) == "":
		return zero, apierr.Validation("target_language is required")
	}
	if in.DocumentID != "" {
		if err := requireDocument(ctx, s.documents, in.DocumentID); err != nil {
			return zero, err
		}
	}

	prompt, err := prompts.Translation(in.Text, in.SourceLanguage, in.TargetLanguage)
	if err != nil {
		return zero, err
	}
	raw, err := askModel(ctx, s.log, s.factory, s.model, "translate", prompt)
	if err != nil {
		return zero, err
	}
	res := normalize.Object(raw, normalize.NewTranslationFallback)

	if in.DocumentID != "" {
		text := res.Fallback.TranslatedText
		if res.Kind == normalize.KindStructured {
			if text = normalize.String(res.Fields, "translated_text"); text == "" {
				text = raw
			}
		}
		if err := s.documents.SetTranslation(ctx, in.DocumentID, strings.TrimSpace(in.TargetLanguage), text); err != nil {
			return zero, fmt.Errorf("save translation: %w", err)
		}
	}
	return res, nil
}
