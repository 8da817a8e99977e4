package services

import (
	"context"
	"time"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/platform/embeddings"
	"github.com/yungbote/parampara-backend/internal/platform/llm"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

const healthProbeTimeout = 3 * time.Second

type HealthReport struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

type HealthService interface {
	Check(ctx context.Context) HealthReport
}

type healthService struct {
	log      *logger.Logger
	store    repos.Store
	factory  llm.Factory
	embedder embeddings.Embedder
}

func NewHealthService(baseLog *logger.Logger, store repos.Store, factory llm.Factory, embedder embeddings.Embedder) HealthService {
	return &healthService{
		log:      baseLog.With("service", "HealthService"),
		store:    store,
		factory:  factory,
		embedder: embedder,
	}
}

// Check pings the store under a timeout. The embedder and LLM are reported
// from configuration only; a probe never calls a provider. Any failed
// component makes the status "degraded".
func (s *healthService) Check(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	storeState := "disconnected"
	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			s.log.Warn("store ping failed", "backend", s.store.Backend(), "error", err)
		} else {
			storeState = "connected"
		}
	}

	embedState := "unavailable"
	if s.embedder != nil && s.embedder.Name() != "" && s.embedder.Dimension() > 0 {
		embedState = "loaded"
	}

	llmState := "unconfigured"
	if s.factory != nil && s.factory.Configured() {
		llmState = "ready"
	}

	status := "healthy"
	if storeState != "connected" || llmState != "ready" || embedState != "loaded" {
		status = "degraded"
	}
	return HealthReport{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Services: map[string]string{
			"mongodb":    storeState,
			"llm":        llmState,
			"embeddings": embedState,
		},
	}
}
