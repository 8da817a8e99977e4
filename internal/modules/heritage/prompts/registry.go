package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/parampara-backend/internal/platform/apierr"
)

//go:embed templates.yaml
var templatesYAML []byte

// Spec is one entry of templates.yaml.
type Spec struct {
	Name     PromptName `yaml:"name"`
	Version  int        `yaml:"version"`
	Requires []string   `yaml:"requires"`
	User     string     `yaml:"user"`
}

type Template struct {
	Name    PromptName
	Version int
	render  *template.Template
	require []string
}

var (
	registryOnce sync.Once
	registry     map[PromptName]Template
	registryErr  error
)

// MakeTemplate compiles a Spec. Templates are rendered verbatim: no escaping, no truncation.
func MakeTemplate(s Spec) (Template, error) {
	if strings.TrimSpace(string(s.Name)) == "" {
		return Template{}, fmt.Errorf("missing prompt name")
	}
	if s.Version <= 0 {
		return Template{}, fmt.Errorf("invalid version for %s", s.Name)
	}
	for _, f := range s.Requires {
		if _, ok := (Input{}).field(f); !ok {
			return Template{}, fmt.Errorf("%s requires unknown field %q", s.Name, f)
		}
	}
	t, err := template.New(string(s.Name)).Option("missingkey=zero").Parse(s.User)
	if err != nil {
		return Template{}, fmt.Errorf("%s template parse: %w", s.Name, err)
	}
	return Template{Name: s.Name, Version: s.Version, render: t, require: s.Requires}, nil
}

func loadRegistry(raw []byte) (map[PromptName]Template, error) {
	var specs []Spec
	if err := yaml.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	out := make(map[PromptName]Template, len(specs))
	for _, s := range specs {
		t, err := MakeTemplate(s)
		if err != nil {
			return nil, err
		}
		if _, dup := out[t.Name]; dup {
			return nil, fmt.Errorf("duplicate prompt %s", t.Name)
		}
		out[t.Name] = t
	}
	return out, nil
}

func templates() (map[PromptName]Template, error) {
	registryOnce.Do(func() {
		registry, registryErr = loadRegistry(templatesYAML)
	})
	return registry, registryErr
}

// Build renders the named prompt. Missing required fields are validation errors.
func Build(name PromptName, in Input) (string, error) {
	reg, err := templates()
	if err != nil {
		return "", err
	}
	t, ok := reg[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt: %s", name)
	}
	for _, f := range t.require {
		if v, _ := in.field(f); strings.TrimSpace(v) == "" {
			return "", apierr.Validation("%s required", f)
		}
	}
	var b bytes.Buffer
	if err := t.render.Execute(&b, in); err != nil {
		return "", fmt.Errorf("%s render: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}
