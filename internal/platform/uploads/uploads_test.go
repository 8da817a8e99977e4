package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStageAndCleanup(t *testing.T) {
	s := NewStager(t.TempDir())
	staged, cleanup, err := s.Stage(strings.NewReader("पाठ"), "leaf.png")
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if !strings.HasSuffix(staged.Path, "_leaf.png") {
		t.Fatalf("unexpected staged path %s", staged.Path)
	}
	if filepath.Dir(staged.Path) != s.Root {
		t.Fatalf("staged outside root: %s", staged.Path)
	}
	b, err := os.ReadFile(staged.Path)
	if err != nil || string(b) != "पाठ" {
		t.Fatalf("unexpected staged content %q err=%v", b, err)
	}
	cleanup()
	cleanup()
	if _, err := os.Stat(staged.Path); !os.IsNotExist(err) {
		t.Fatalf("expected staged file removed, stat err=%v", err)
	}
}

func TestStageDistinctNames(t *testing.T) {
	s := NewStager(t.TempDir())
	a, ca, _ := s.Stage(strings.NewReader("a"), "same.wav")
	b, cb, _ := s.Stage(strings.NewReader("b"), "same.wav")
	defer ca()
	defer cb()
	if a.Path == b.Path {
		t.Fatalf("expected distinct staged paths")
	}
}

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"../../etc/passwd":  "passwd",
		`C:\docs\song.mp3`:  "song.mp3",
		"":                  "upload",
		"..":                "upload",
		"folio 12.jpg":      "folio 12.jpg",
	}
	for in, want := range tests {
		if got := SafeName(in); got != want {
			t.Fatalf("SafeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefaultRoot(t *testing.T) {
	s := NewStager("")
	if filepath.Base(s.Root) != dirName {
		t.Fatalf("unexpected default root %s", s.Root)
	}
}
