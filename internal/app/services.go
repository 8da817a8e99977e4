package app

import (
	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/services"
)

type Services struct {
	Ingest      services.IngestService
	Restoration services.RestorationService
	Translation services.TranslationService
	Story       services.StoryService
	Search      services.SearchService
	Progress    services.ProgressService
	Catalog     services.CatalogService
	Health      services.HealthService
}

func wireServices(log *logger.Logger, cfg Config, store repos.Store, clients *Clients) (Services, error) {
	log.Info("Wiring services...")
	ranking, err := services.ParseRankingMode(cfg.SearchRanking)
	if err != nil {
		return Services{}, err
	}
	return Services{
		Ingest: services.NewIngestService(log,
			store.Documents(), store.FolkSongs(),
			clients.OCR, clients.Transcriber, clients.Embedder, clients.Archive),
		Restoration: services.NewRestorationService(log, clients.LLM, cfg.RestoreModel, store.Documents()),
		Translation: services.NewTranslationService(log, clients.LLM, cfg.TranslateModel, store.Documents()),
		Story:       services.NewStoryService(log, clients.LLM, cfg.StoryModel, store.Documents(), store.Stories()),
		Search:      services.NewSearchService(log, store.Documents(), store.FolkSongs(), clients.Embedder, ranking),
		Progress:    services.NewProgressService(log, store.Progress()),
		Catalog:     services.NewCatalogService(log, store),
		Health:      services.NewHealthService(log, store, clients.LLM, clients.Embedder),
	}, nil
}
