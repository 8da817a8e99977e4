package normalize

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"strings"

	"github.com/yungbote/parampara-backend/internal/domain/heritage"
)

type Kind int

const (
	KindFallback Kind = iota
	KindStructured
)

func (k Kind) String() string {
	if k == KindStructured {
		return "structured"
	}
	return "fallback"
}

// Parsed is a provider reply: either a decoded JSON value or the raw text.
type Parsed struct {
	Kind  Kind
	Value any
	Raw   string
}

// Parse strips surrounding markdown code fences and decodes the remainder as
// JSON. Anything after the first value, stray closers included, makes it a fallback.
func Parse(raw string) Parsed {
	body := StripFences(raw)
	var v any
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return Parsed{Kind: KindFallback, Raw: raw}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Parsed{Kind: KindFallback, Raw: raw}
	}
	return Parsed{Kind: KindStructured, Value: numbersToFloat(v), Raw: raw}
}

// StripFences removes one leading ```lang fence and one trailing ``` fence.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Result is the endpoint payload for one provider reply.
type Result[T any] struct {
	Kind     Kind
	Fields   map[string]any
	Fallback T
}

// Payload is what the endpoint responds with: the provider's own object when
// structured, otherwise the fallback value.
func (r Result[T]) Payload() any {
	if r.Kind == KindStructured {
		return r.Fields
	}
	return r.Fallback
}

// Object is structured only when the reply decodes to a JSON object. The map is
// passed through unchanged; anything else uses fallback(raw).
func Object[T any](raw string, fallback func(string) T) Result[T] {
	p := Parse(raw)
	if p.Kind == KindStructured {
		if m, ok := p.Value.(map[string]any); ok {
			return Result[T]{Kind: KindStructured, Fields: m}
		}
	}
	return Result[T]{Kind: KindFallback, Fallback: fallback(raw)}
}

// String reads a string field, empty when absent or not a string.
func String(fields map[string]any, key string) string {
	if fields == nil {
		return ""
	}
	s, _ := fields[key].(string)
	return s
}

// Confidence reads a numeric field clamped to [0,1]; ok is false when absent or non-numeric.
func Confidence(fields map[string]any, key string) (float64, bool) {
	if fields == nil {
		return 0, false
	}
	f, ok := fields[key].(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return heritage.ClampConfidence(f), true
}

// QuizQuestions pulls a question list out of a quiz reply: either a top-level
// array or an object carrying "questions". Non-object entries are skipped.
func QuizQuestions(raw string) []map[string]any {
	p := Parse(raw)
	if p.Kind != KindStructured {
		return nil
	}
	var items []any
	switch v := p.Value.(type) {
	case []any:
		items = v
	case map[string]any:
		items, _ = v["questions"].([]any)
	}
	if len(items) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func numbersToFloat(v any) any {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	case map[string]any:
		for k, x := range t {
			t[k] = numbersToFloat(x)
		}
		return t
	case []any:
		for i, x := range t {
			t[i] = numbersToFloat(x)
		}
		return t
	default:
		return v
	}
}
