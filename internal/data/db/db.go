package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Backend     string
	PostgresDSN string
	SQLitePath  string
	// Silent disables the gorm statement logger (tests).
	Silent bool
}

type SQLService struct {
	db      *gorm.DB
	log     *logger.Logger
	backend string
}

func NewSQLService(logg *logger.Logger, cfg Config) (*SQLService, error) {
	if logg == nil {
		logg = logger.Nop()
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	serviceLog := logg.With("service", "SQLService", "backend", cfg.Backend)

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	if cfg.Silent {
		gormLog = gormLogger.Default.LogMode(gormLogger.Silent)
	}
	gcfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	}

	var dialector gorm.Dialector
	switch cfg.Backend {
	case BackendPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, fmt.Errorf("missing POSTGRES_DSN")
		}
		dialector = postgres.Open(cfg.PostgresDSN)
	case BackendSQLite:
		path := strings.TrimSpace(cfg.SQLitePath)
		if path == "" {
			return nil, fmt.Errorf("missing SQLITE_PATH")
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("sqlite dir: %w", err)
			}
		}
		dialector = sqlite.Open(path + "?_busy_timeout=5000&_journal_mode=WAL")
	default:
		return nil, fmt.Errorf("unsupported sql backend %q", cfg.Backend)
	}

	gdb, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Backend, err)
	}
	if cfg.Backend == BackendSQLite {
		// sqlite allows one writer; serialize through a single connection.
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}
	serviceLog.Info("sql store connected")
	return &SQLService{db: gdb, log: serviceLog, backend: cfg.Backend}, nil
}

func (s *SQLService) DB() *gorm.DB { return s.db }

func (s *SQLService) Backend() string { return s.backend }

func (s *SQLService) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
