package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/http"
	"github.com/yungbote/parampara-backend/internal/platform/envutil"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/platform/observability"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    repos.Store
	Clients  *Clients
	Services Services
	Server   *http.Server

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	LoadDotEnv(log)
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})

	store, err := wireStore(ctx, log, cfg)
	if err != nil {
		_ = otelShutdown(context.Background())
		log.Sync()
		return nil, err
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = store.Close(context.Background())
		_ = otelShutdown(context.Background())
		log.Sync()
		return nil, err
	}

	serviceset, err := wireServices(log, cfg, store, clients)
	if err != nil {
		clients.Close()
		_ = store.Close(context.Background())
		_ = otelShutdown(context.Background())
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, cfg, serviceset)
	server := http.NewServer(":"+cfg.Port, routerConfig(log, cfg, handlerset, envutil.Bool("OTEL_ENABLED", false)))

	return &App{
		Log:          log,
		Cfg:          cfg,
		Store:        store,
		Clients:      clients,
		Services:     serviceset,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Run blocks until the server stops. Shutdown stops it.
func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port, "store", a.Store.Backend())
	return a.Server.Run()
}

func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return nil
	}
	return a.Server.Shutdown(ctx)
}

// Close releases the store, the provider clients and the tracer provider.
func (a *App) Close() {
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.Clients != nil {
		a.Clients.Close()
	}
	if a.Store != nil {
		if err := a.Store.Close(ctx); err != nil {
			a.Log.Warn("store close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
