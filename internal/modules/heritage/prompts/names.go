package prompts

type PromptName string

const (
	PromptRestoration      PromptName = "restoration"
	PromptTranslation      PromptName = "translation"
	PromptStorySummary     PromptName = "story_summary"
	PromptStoryInteractive PromptName = "story_interactive"
	PromptStoryQuiz        PromptName = "story_quiz"
)

const DefaultRestorationContext = "Ancient manuscript or inscription"
