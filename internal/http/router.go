package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/parampara-backend/internal/http/handlers"
	httpMW "github.com/yungbote/parampara-backend/internal/http/middleware"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

const maxMultipartMemory = 32 << 20

type RouterConfig struct {
	Log         *logger.Logger
	CORSOrigins []string
	// ServiceName enables otelgin spans when non-empty.
	ServiceName string

	HealthHandler      *httpH.HealthHandler
	IngestHandler      *httpH.IngestHandler
	RestorationHandler *httpH.RestorationHandler
	StoryHandler       *httpH.StoryHandler
	SearchHandler      *httpH.SearchHandler
	UserHandler        *httpH.UserHandler
	CatalogHandler     *httpH.CatalogHandler
	VRHandler          *httpH.VRHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = maxMultipartMemory
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	api := r.Group("/api")
	{
		// Health
		if cfg.HealthHandler != nil {
			api.GET("/", cfg.HealthHandler.Root)
			api.GET("/health", cfg.HealthHandler.HealthCheck)
		}

		// Ingestion
		if cfg.IngestHandler != nil {
			api.POST("/ocr/upload", cfg.IngestHandler.UploadManuscript)
			api.POST("/speech/upload", cfg.IngestHandler.UploadFolkSong)
		}

		// Restoration + translation
		if cfg.RestorationHandler != nil {
			api.POST("/restore", cfg.RestorationHandler.Restore)
			api.POST("/translate", cfg.RestorationHandler.Translate)
		}

		// Stories
		if cfg.StoryHandler != nil {
			api.POST("/story/generate", cfg.StoryHandler.Generate)
		}

		// Search
		if cfg.SearchHandler != nil {
			api.POST("/search", cfg.SearchHandler.Search)
		}

		// Gamification
		if cfg.UserHandler != nil {
			api.GET("/user/:user_id/progress", cfg.UserHandler.GetProgress)
			api.POST("/user/:user_id/badge/:badge_name", cfg.UserHandler.AwardBadge)
		}

		// Catalog
		if cfg.CatalogHandler != nil {
			api.GET("/documents", cfg.CatalogHandler.ListDocuments)
			api.GET("/folk-songs", cfg.CatalogHandler.ListFolkSongs)
			api.GET("/stories", cfg.CatalogHandler.ListStories)
		}

		// VR
		if cfg.VRHandler != nil {
			api.GET("/vr/preview/:document_id", cfg.VRHandler.Preview)
		}
	}

	return r
}
