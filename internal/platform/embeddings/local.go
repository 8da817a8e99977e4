package embeddings

import (
	"context"
	"hash/fnv"
	"regexp"
	"strings"
)

// Local is a corpus-free hashing embedder. Tokens are bucketed by hash into a
// fixed number of signed dimensions, weighted by term frequency and L2 normalized,
// so identical text always yields the identical vector.
type Local struct {
	dimension    int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

func NewLocal(dimension int) *Local {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Local{
		dimension: dimension,
		// Marks are kept inside words so Indic vowel signs do not split tokens.
		tokenPattern: regexp.MustCompile(`[\p{L}\p{M}\p{N}]+(?:['’][\p{L}\p{M}]+)*`),
		stopwords:    defaultStopwords(),
	}
}

func (e *Local) Name() string   { return "local-hash" }
func (e *Local) Dimension() int { return e.dimension }

func (e *Local) Embed(ctx context.Context, text string) ([]float64, error) {
	vec := make([]float64, e.dimension)
	tokens := e.tokenize(text)
	if len(tokens) == 0 {
		return vec, nil
	}
	for _, tok := range tokens {
		h := fnv.New64a()
		_, _ = h.Write([]byte(tok))
		sum := h.Sum64()
		idx := int(sum % uint64(e.dimension))
		sign := 1.0
		if (sum>>63)&1 == 1 {
			sign = -1.0
		}
		vec[idx] += sign
	}
	for i := range vec {
		vec[i] /= float64(len(tokens))
	}
	normalize(vec)
	return vec, nil
}

func (e *Local) tokenize(text string) []string {
	raw := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "for", "to", "of", "in", "on", "at", "by",
		"with", "as", "is", "are", "was", "were", "be", "been", "it", "this", "that", "these", "those",
		"from", "into", "about", "so", "such", "very", "can", "will", "just",
		"है", "हैं", "का", "की", "के", "और", "में", "से", "को", "पर", "यह", "था",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
