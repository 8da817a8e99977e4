package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/modules/heritage/normalize"
	"github.com/yungbote/parampara-backend/internal/modules/heritage/prompts"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/llm"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

const DefaultStoryLanguage = "english"

type StoryInput struct {
	DocumentID     string
	StoryType      string
	TargetLanguage string
}

type StoryResult struct {
	StoryID        string             `json:"story_id"`
	Content        string             `json:"content"`
	StoryType      heritage.StoryType `json:"story_type"`
	SourceDocument string             `json:"source_document"`
}

type StoryService interface {
	Generate(ctx context.Context, in StoryInput) (*StoryResult, error)
}

type storyService struct {
	log       *logger.Logger
	factory   llm.Factory
	model     llm.ModelSpec
	documents repos.DocumentRepo
	stories   repos.StoryRepo
}

func NewStoryService(baseLog *logger.Logger, factory llm.Factory, model llm.ModelSpec, documents repos.DocumentRepo, stories repos.StoryRepo) StoryService {
	return &storyService{
		log:       baseLog.With("service", "StoryService"),
		factory:   factory,
		model:     model,
		documents: documents,
		stories:   stories,
	}
}

// Generate reads the source document, asks the model, then inserts the story.
// The read and the insert are separate writes with no transaction between them.
func (s *storyService) Generate(ctx context.Context, in StoryInput) (*StoryResult, error) {
	storyType, err := prompts.ParseStoryType(in.StoryType)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.DocumentID) == "" {
		return nil, apierr.Validation("document_id is required")
	}
	target := defaultString(in.TargetLanguage, DefaultStoryLanguage)

	doc, err := s.documents.GetByID(ctx, in.DocumentID)
	if errors.Is(err, apierr.ErrNotFound) {
		return nil, apierr.NotFound("Document not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	prompt, err := prompts.Story(storyType, prompts.StorySource{
		Title:    doc.Title,
		Text:     doc.OriginalText,
		Language: doc.Language,
	}, target)
	if err != nil {
		return nil, err
	}
	content, err := askModel(ctx, s.log, s.factory, s.model, "story", prompt)
	if err != nil {
		return nil, err
	}

	story := &heritage.Story{
		Record:           heritage.NewRecord(),
		Title:            fmt.Sprintf("%s - %s", doc.Title, storyType.Title()),
		Content:          content,
		SourceDocumentID: doc.ID,
		StoryType:        storyType,
		Language:         target,
	}
	if storyType == heritage.StoryTypeQuiz {
		story.QuizQuestions = normalize.QuizQuestions(content)
	}
	if err := s.stories.Create(ctx, story); err != nil {
		return nil, fmt.Errorf("save story: %w", err)
	}
	s.log.Info("story generated", "story_id", story.ID, "document_id", doc.ID, "story_type", storyType, "quiz_questions", len(story.QuizQuestions))

	return &StoryResult{
		StoryID:        story.ID,
		Content:        content,
		StoryType:      storyType,
		SourceDocument: doc.Title,
	}, nil
}
