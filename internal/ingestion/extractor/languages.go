package extractor

import "strings"

type langCodes struct {
	iso    string
	speech string
}

// Names as the API receives them ("hindi", "tamil", ...).
var languages = map[string]langCodes{
	"hindi":     {"hi", "hi-IN"},
	"sanskrit":  {"sa", "hi-IN"},
	"bengali":   {"bn", "bn-IN"},
	"tamil":     {"ta", "ta-IN"},
	"telugu":    {"te", "te-IN"},
	"marathi":   {"mr", "mr-IN"},
	"gujarati":  {"gu", "gu-IN"},
	"kannada":   {"kn", "kn-IN"},
	"malayalam": {"ml", "ml-IN"},
	"punjabi":   {"pa", "pa-Guru-IN"},
	"odia":      {"or", "or-IN"},
	"urdu":      {"ur", "ur-IN"},
	"assamese":  {"as", "as-IN"},
	"nepali":    {"ne", "ne-NP"},
	"english":   {"en", "en-IN"},
}

// OCRHints maps a language name to Vision language hints. Unknown names yield none.
func OCRHints(language string) []string {
	if c, ok := languages[strings.ToLower(strings.TrimSpace(language))]; ok {
		return []string{c.iso}
	}
	return nil
}

// SpeechLanguageCode maps a language name to a BCP-47 code for recognition.
// Unknown names fall back to Hindi.
func SpeechLanguageCode(language string) string {
	if c, ok := languages[strings.ToLower(strings.TrimSpace(language))]; ok {
		return c.speech
	}
	return "hi-IN"
}
