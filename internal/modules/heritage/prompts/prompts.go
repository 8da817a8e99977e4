package prompts

import (
	"strings"

	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
)

func Restoration(text, language, context string) (string, error) {
	if strings.TrimSpace(context) == "" {
		context = DefaultRestorationContext
	}
	return Build(PromptRestoration, Input{Text: text, Language: language, Context: context})
}

func Translation(text, source, target string) (string, error) {
	return Build(PromptTranslation, Input{Text: text, SourceLanguage: source, TargetLanguage: target})
}

// StorySource is the part of a document a story prompt is grounded on.
type StorySource struct {
	Title    string
	Text     string
	Language string
}

// ParseStoryType validates a client-supplied story type.
func ParseStoryType(s string) (heritage.StoryType, error) {
	st := heritage.StoryType(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", apierr.Validation("story_type must be one of summary, interactive, quiz (got %q)", s)
	}
	return st, nil
}

func storyPrompt(st heritage.StoryType) (PromptName, error) {
	switch st {
	case heritage.StoryTypeSummary:
		return PromptStorySummary, nil
	case heritage.StoryTypeInteractive:
		return PromptStoryInteractive, nil
	case heritage.StoryTypeQuiz:
		return PromptStoryQuiz, nil
	}
	return "", apierr.Validation("unsupported story_type %q", st)
}

func Story(st heritage.StoryType, src StorySource, targetLanguage string) (string, error) {
	name, err := storyPrompt(st)
	if err != nil {
		return "", err
	}
	return Build(name, Input{
		Title:          src.Title,
		Text:           src.Text,
		Language:       src.Language,
		TargetLanguage: targetLanguage,
	})
}
