package heritage

import "strings"

type StoryType string

const (
	StoryTypeSummary     StoryType = "summary"
	StoryTypeInteractive StoryType = "interactive"
	StoryTypeQuiz        StoryType = "quiz"
)

func (t StoryType) Valid() bool {
	switch t {
	case StoryTypeSummary, StoryTypeInteractive, StoryTypeQuiz:
		return true
	}
	return false
}

// Title is the capitalized form used in generated story titles ("Quiz").
func (t StoryType) Title() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

type SearchType string

const (
	SearchSemantic SearchType = "semantic"
	SearchKeyword  SearchType = "keyword"
)

func (t SearchType) Valid() bool {
	return t == SearchSemantic || t == SearchKeyword
}
