package prompts

// Input is the superset of fields any template renders.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	Text     string
	Language string
	Context  string

	SourceLanguage string
	TargetLanguage string

	// Story source document
	Title string
}

// field returns an Input field by its template name.
func (in Input) field(name string) (string, bool) {
	switch name {
	case "Text":
		return in.Text, true
	case "Language":
		return in.Language, true
	case "Context":
		return in.Context, true
	case "SourceLanguage":
		return in.SourceLanguage, true
	case "TargetLanguage":
		return in.TargetLanguage, true
	case "Title":
		return in.Title, true
	}
	return "", false
}
