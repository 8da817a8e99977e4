package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/parampara-backend/internal/data/db"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_BACKEND", "DB_NAME", "LLM_TIMEOUT_SECONDS", "SEARCH_RANKING", "CORS_ORIGINS", "EMERGENT_LLM_KEY", "LLM_BASE_URL", "EMBEDDINGS_BASE_URL"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(logger.Nop())
	if cfg.Port != "8080" || cfg.StoreBackend != "mongodb" || cfg.DBName != "parampara" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LLMTimeout != 120*time.Second {
		t.Fatalf("LLMTimeout = %s", cfg.LLMTimeout)
	}
	if cfg.RestoreModel.Provider != "anthropic" || cfg.TranslateModel.Provider != "gemini" || cfg.StoryModel.Provider != "openai" {
		t.Fatalf("unexpected model routing: %+v %+v %+v", cfg.RestoreModel, cfg.TranslateModel, cfg.StoryModel)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.EmbeddingsBaseURL != cfg.LLMBaseURL {
		t.Fatalf("embeddings base url should follow the llm base url, got %q vs %q", cfg.EmbeddingsBaseURL, cfg.LLMBaseURL)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("LLM_TIMEOUT_SECONDS", "-5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LLM_STORY_MODEL", "gpt-4o")

	cfg := LoadConfig(logger.Nop())
	if cfg.Port != "9000" || cfg.StoreBackend != "sqlite" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.LLMTimeout != 120*time.Second {
		t.Fatalf("non-positive timeout should fall back, got %s", cfg.LLMTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.StoryModel.Model != "gpt-4o" {
		t.Fatalf("StoryModel = %+v", cfg.StoryModel)
	}
}

func TestWireStore(t *testing.T) {
	log := logger.Nop()
	ctx := context.Background()

	if _, err := wireStore(ctx, log, Config{StoreBackend: "cassandra"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}

	st, err := wireStore(ctx, log, Config{
		StoreBackend: db.BackendSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "wire.db"),
	})
	if err != nil {
		t.Fatalf("wireStore sqlite: %v", err)
	}
	defer st.Close(ctx)
	if st.Backend() != db.BackendSQLite {
		t.Fatalf("Backend() = %q", st.Backend())
	}
	if err := st.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestWireClientsAndServices(t *testing.T) {
	log := logger.Nop()
	ctx := context.Background()
	cfg := Config{
		EmbeddingsBackend:   "local",
		EmbeddingsDimension: 32,
		OCRBackend:          "stub",
		SpeechBackend:       "stub",
		AudioStore:          "none",
		SearchRanking:       "similarity",
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		t.Fatalf("wireClients: %v", err)
	}
	defer clients.Close()
	if clients.LLM.Configured() {
		t.Fatalf("llm should be unconfigured without a key")
	}
	if clients.OCR.Name() != "stub" || clients.Transcriber.Name() != "stub" || clients.Archive.Kind() != "none" {
		t.Fatalf("unexpected clients: ocr=%s speech=%s archive=%s", clients.OCR.Name(), clients.Transcriber.Name(), clients.Archive.Kind())
	}

	st, err := wireStore(ctx, log, Config{StoreBackend: db.BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "svc.db")})
	if err != nil {
		t.Fatalf("wireStore: %v", err)
	}
	defer st.Close(ctx)

	if _, err := wireServices(log, cfg, st, clients); err != nil {
		t.Fatalf("wireServices: %v", err)
	}
	bad := cfg
	bad.SearchRanking = "pagerank"
	if _, err := wireServices(log, bad, st, clients); err == nil {
		t.Fatalf("expected error for unknown ranking mode")
	}

	cfg.OCRBackend = "tesseract"
	if _, err := wireClients(ctx, log, cfg); err == nil {
		t.Fatalf("expected error for unknown OCR backend")
	}
}

func TestRouterConfigTracing(t *testing.T) {
	cfg := Config{ServiceName: "parampara-backend", CORSOrigins: []string{"*"}}
	if rc := routerConfig(logger.Nop(), cfg, Handlers{}, false); rc.ServiceName != "" {
		t.Fatalf("tracing disabled should leave ServiceName empty")
	}
	if rc := routerConfig(logger.Nop(), cfg, Handlers{}, true); rc.ServiceName != "parampara-backend" {
		t.Fatalf("ServiceName = %q", rc.ServiceName)
	}
}
