// Package llmtest provides an in-memory llm.Factory for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/llm"
)

type Call struct {
	SessionID string
	Spec      llm.ModelSpec
	Prompt    string
}

// Factory answers every session with Reply (or Err) and records the prompts it saw.
type Factory struct {
	mu    sync.Mutex
	Reply string
	Err   error
	// Unconfigured makes NewSession fail like a factory without a credential.
	Unconfigured bool
	calls        []Call
}

func New(reply string) *Factory {
	return &Factory{Reply: reply}
}

func (f *Factory) Configured() bool { return !f.Unconfigured }

func (f *Factory) NewSession(spec llm.ModelSpec) (llm.Session, error) {
	if f.Unconfigured {
		return nil, fmt.Errorf("%w: missing EMERGENT_LLM_KEY", apierr.ErrConfiguration)
	}
	return &session{id: uuid.New().String(), spec: spec, f: f}, nil
}

func (f *Factory) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Factory) SetReply(reply string) {
	f.mu.Lock()
	f.Reply = reply
	f.mu.Unlock()
}

type session struct {
	id   string
	spec llm.ModelSpec
	f    *Factory
}

func (s *session) ID() string           { return s.id }
func (s *session) Model() llm.ModelSpec { return s.spec }

func (s *session) SendMessage(ctx context.Context, text string) (string, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	s.f.calls = append(s.f.calls, Call{SessionID: s.id, Spec: s.spec, Prompt: text})
	if s.f.Err != nil {
		return "", s.f.Err
	}
	return s.f.Reply, nil
}
