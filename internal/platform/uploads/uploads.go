package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const dirName = "parampara_uploads"

// Staged is an uploaded file written to the temporary staging area.
type Staged struct {
	Path     string
	Filename string
	Size     int64
}

// Stager writes uploads under Root. A zero Root means <os temp>/parampara_uploads.
type Stager struct {
	Root string
}

func NewStager(root string) *Stager {
	if strings.TrimSpace(root) == "" {
		root = filepath.Join(os.TempDir(), dirName)
	}
	return &Stager{Root: root}
}

// Stage copies src to <root>/<uuid>_<name>. The returned cleanup removes the
// staged file and is safe to call more than once; callers defer it.
func (s *Stager) Stage(src io.Reader, filename string) (*Staged, func(), error) {
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return nil, func() {}, fmt.Errorf("create staging dir: %w", err)
	}
	name := SafeName(filename)
	path := filepath.Join(s.Root, uuid.New().String()+"_"+name)
	cleanup := func() { _ = os.Remove(path) }

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return nil, func() {}, fmt.Errorf("create staged file: %w", err)
	}
	n, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	if copyErr != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("write staged file: %w", copyErr)
	}
	if closeErr != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("close staged file: %w", closeErr)
	}
	return &Staged{Path: path, Filename: filename, Size: n}, cleanup, nil
}

// StageMultipart opens a multipart header and stages its content.
func (s *Stager) StageMultipart(fh *multipart.FileHeader) (*Staged, func(), error) {
	if fh == nil {
		return nil, func() {}, fmt.Errorf("missing file")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	return s.Stage(src, fh.Filename)
}

// SafeName strips directories and path separators from a client-supplied filename.
func SafeName(filename string) string {
	name := filepath.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	switch name {
	case "", ".", "..", "/":
		return "upload"
	}
	return name
}
