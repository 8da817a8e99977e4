package app

import (
	httpH "github.com/yungbote/parampara-backend/internal/http/handlers"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/platform/uploads"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Ingest      *httpH.IngestHandler
	Restoration *httpH.RestorationHandler
	Story       *httpH.StoryHandler
	Search      *httpH.SearchHandler
	User        *httpH.UserHandler
	Catalog     *httpH.CatalogHandler
	VR          *httpH.VRHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(services.Health),
		Ingest:      httpH.NewIngestHandler(log, services.Ingest, uploads.NewStager(cfg.UploadDir)),
		Restoration: httpH.NewRestorationHandler(log, services.Restoration, services.Translation),
		Story:       httpH.NewStoryHandler(log, services.Story),
		Search:      httpH.NewSearchHandler(log, services.Search),
		User:        httpH.NewUserHandler(log, services.Progress),
		Catalog:     httpH.NewCatalogHandler(services.Catalog),
		VR:          httpH.NewVRHandler(),
	}
}
