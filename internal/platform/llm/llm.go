package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/ctxutil"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

const (
	DefaultBaseURL       = "https://api.openai.com/v1"
	DefaultSystemMessage = "You are an expert in Indian cultural heritage, ancient texts, and linguistic restoration."
	defaultTimeout       = 120 * time.Second
	maxErrorBody         = 2048
)

// ModelSpec names a provider family and a model identifier within it.
type ModelSpec struct {
	Provider string
	Model    string
}

func (m ModelSpec) String() string {
	if m.Provider == "" {
		return m.Model
	}
	return m.Provider + "/" + m.Model
}

// Route is the model identifier sent to the gateway. OpenAI models go bare,
// other families are namespaced as "provider/model".
func (m ModelSpec) Route() string {
	p := strings.ToLower(strings.TrimSpace(m.Provider))
	if p == "" || p == "openai" {
		return m.Model
	}
	return p + "/" + m.Model
}

type Config struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	SystemMessage string
	HTTPClient    *http.Client
}

// Session is a single-use conversation with one model.
type Session interface {
	ID() string
	Model() ModelSpec
	SendMessage(ctx context.Context, text string) (string, error)
}

// Factory hands out independent sessions sharing one credential.
type Factory interface {
	Configured() bool
	NewSession(spec ModelSpec) (Session, error)
}

type factory struct {
	log        *logger.Logger
	apiKey     string
	baseURL    string
	system     string
	httpClient *http.Client
}

func NewFactory(log *logger.Logger, cfg Config) Factory {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	system := strings.TrimSpace(cfg.SystemMessage)
	if system == "" {
		system = DefaultSystemMessage
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &factory{
		log:        log.With("client", "LLMFactory"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    baseURL,
		system:     system,
		httpClient: hc,
	}
}

func (f *factory) Configured() bool { return f.apiKey != "" }

func (f *factory) NewSession(spec ModelSpec) (Session, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("%w: missing EMERGENT_LLM_KEY", apierr.ErrConfiguration)
	}
	if strings.TrimSpace(spec.Model) == "" {
		return nil, fmt.Errorf("%w: empty model for provider %q", apierr.ErrConfiguration, spec.Provider)
	}
	return &session{
		id:      uuid.New().String(),
		spec:    spec,
		factory: f,
	}, nil
}

type session struct {
	id      string
	spec    ModelSpec
	factory *factory
}

func (s *session) ID() string       { return s.id }
func (s *session) Model() ModelSpec { return s.spec }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *session) SendMessage(ctx context.Context, text string) (string, error) {
	ctx = ctxutil.Default(ctx)
	f := s.factory

	body := chatRequest{
		Model: s.spec.Route(),
		Messages: []chatMessage{
			{Role: "system", Content: f.system},
			{Role: "user", Content: text},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", fmt.Errorf("%w: encode request: %v", apierr.ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/chat/completions", &buf)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", apierr.ErrProvider, err)
	}
	req.Header.Set("Authorization", "Bearer "+f.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", s.id)
	if td := ctxutil.GetTraceData(ctx); td != nil && td.RequestID != "" {
		req.Header.Set("X-Request-Id", td.RequestID)
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.log.Warn("llm request failed", "session_id", s.id, "model", s.spec.String(), "error", err)
		return "", fmt.Errorf("%w: %s: %v", apierr.ErrProvider, s.spec, err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", fmt.Errorf("%w: read response: %v", apierr.ErrProvider, readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		herr := &HTTPError{StatusCode: resp.StatusCode, Body: truncate(string(raw), maxErrorBody)}
		f.log.Warn("llm non-2xx", "session_id", s.id, "model", s.spec.String(), "status", resp.StatusCode)
		return "", herr
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", apierr.ErrProvider, err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: %s returned an empty completion", apierr.ErrProvider, s.spec)
	}
	f.log.Debug("llm completion",
		"session_id", s.id,
		"model", s.spec.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out.Choices[0].Message.Content, nil
}

// HTTPError is a non-2xx answer from the gateway.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("llm http %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) Unwrap() error { return apierr.ErrProvider }

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// IsProviderFailure reports whether err came from the provider call.
func IsProviderFailure(err error) bool {
	return errors.Is(err, apierr.ErrProvider)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
