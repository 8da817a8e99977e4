package heritage

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// searchSeparator joins searchable fields so a keyword cannot match across two of them.
const searchSeparator = "\u001f"

// FoldText is the caseless form used for keyword matching: NFC composed,
// then Unicode case folded ("ŚRĪ" and "śrī" fold alike).
func FoldText(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// RefreshSearchText recomputes the folded keyword column from title,
// original text and description.
func (d *CulturalDocument) RefreshSearchText() {
	d.SearchText = FoldText(strings.Join([]string{d.Title, d.OriginalText, d.Description}, searchSeparator))
}
