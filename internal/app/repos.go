package app

import (
	"context"
	"fmt"

	"github.com/yungbote/parampara-backend/internal/data/db"
	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/data/repos/mongostore"
	"github.com/yungbote/parampara-backend/internal/data/repos/sqlstore"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

const backendMongo = "mongodb"

// wireStore opens the configured document store. The mongo backend keeps the
// original collection layout; postgres and sqlite go through gorm.
func wireStore(ctx context.Context, log *logger.Logger, cfg Config) (repos.Store, error) {
	log.Info("Wiring store...", "backend", cfg.StoreBackend)
	switch cfg.StoreBackend {
	case "", backendMongo, "mongo":
		st, err := mongostore.Open(ctx, log, mongostore.Config{URI: cfg.MongoURL, Database: cfg.DBName})
		if err != nil {
			return nil, fmt.Errorf("init mongodb: %w", err)
		}
		return st, nil
	case db.BackendPostgres, db.BackendSQLite:
		svc, err := db.NewSQLService(log, db.Config{
			Backend:     cfg.StoreBackend,
			PostgresDSN: cfg.PostgresDSN,
			SQLitePath:  cfg.SQLitePath,
		})
		if err != nil {
			return nil, fmt.Errorf("init %s: %w", cfg.StoreBackend, err)
		}
		st, err := sqlstore.New(svc, log)
		if err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("%s automigrate: %w", cfg.StoreBackend, err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want mongodb, postgres or sqlite)", cfg.StoreBackend)
	}
}
