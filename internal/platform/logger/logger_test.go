package logger

import (
	"strings"
	"testing"
)

func TestSanitizeValue(t *testing.T) {
	tests := []struct {
		key  string
		val  interface{}
		want func(interface{}) bool
	}{
		{"api_key", "sk-123", func(v interface{}) bool { return v == "[REDACTED]" }},
		{"emergent_llm_key", "k", func(v interface{}) bool { return v == "[REDACTED]" }},
		{"user_id", "alice", func(v interface{}) bool {
			s, ok := v.(string)
			return ok && strings.HasPrefix(s, "hash:") && len(s) == len("hash:")+12
		}},
		{"document_id", "abc", func(v interface{}) bool { return v == "abc" }},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := sanitizeValue(tt.key, tt.val)
			if !tt.want(got) {
				t.Fatalf("sanitizeValue(%q) = %v", tt.key, got)
			}
		})
	}
}

func TestSanitizeValueNestedMap(t *testing.T) {
	got := sanitizeValue("payload", map[string]interface{}{"Authorization": "Bearer x", "title": "Gita"})
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got %T", got)
	}
	if m["Authorization"] != "[REDACTED]" {
		t.Fatalf("authorization not redacted: %v", m["Authorization"])
	}
	if m["title"] != "Gita" {
		t.Fatalf("title changed: %v", m["title"])
	}
}

func TestHashValueIsStable(t *testing.T) {
	if hashValue("u1") != hashValue("u1") {
		t.Fatalf("hash not stable")
	}
	if hashValue("u1") == hashValue("u2") {
		t.Fatalf("distinct ids hashed equal")
	}
	if hashValue("") != "" {
		t.Fatalf("empty id should hash to empty")
	}
}
