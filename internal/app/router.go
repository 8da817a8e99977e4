package app

import (
	"github.com/yungbote/parampara-backend/internal/http"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

func routerConfig(log *logger.Logger, cfg Config, handlers Handlers, tracing bool) http.RouterConfig {
	rc := http.RouterConfig{
		Log:                log,
		CORSOrigins:        cfg.CORSOrigins,
		HealthHandler:      handlers.Health,
		IngestHandler:      handlers.Ingest,
		RestorationHandler: handlers.Restoration,
		StoryHandler:       handlers.Story,
		SearchHandler:      handlers.Search,
		UserHandler:        handlers.User,
		CatalogHandler:     handlers.Catalog,
		VRHandler:          handlers.VR,
	}
	if tracing {
		rc.ServiceName = cfg.ServiceName
	}
	return rc
}
