package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/parampara-backend/internal/platform/embeddings"
	"github.com/yungbote/parampara-backend/internal/platform/envutil"
	"github.com/yungbote/parampara-backend/internal/platform/llm"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	Environment string
	ServiceName string

	StoreBackend string
	MongoURL     string
	DBName       string
	PostgresDSN  string
	SQLitePath   string

	LLMKey         string
	LLMBaseURL     string
	LLMTimeout     time.Duration
	RestoreModel   llm.ModelSpec
	TranslateModel llm.ModelSpec
	StoryModel     llm.ModelSpec

	EmbeddingsBackend   string
	EmbeddingsModel     string
	EmbeddingsBaseURL   string
	EmbeddingsDimension int

	OCRBackend    string
	SpeechBackend string

	AudioStore      string
	AudioArchiveDir string
	AudioGCSBucket  string

	UploadDir     string
	SearchRanking string
	CORSOrigins   []string
}

// LoadDotEnv reads .env into the process environment when the file exists.
// Variables already set win.
func LoadDotEnv(log *logger.Logger, paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			log.Warn("could not load env file", "path", p, "error", err)
			continue
		}
		log.Info("loaded env file", "path", p)
	}
}

func LoadConfig(log *logger.Logger) Config {
	timeoutSeconds := envutil.Int("LLM_TIMEOUT_SECONDS", 120)
	if timeoutSeconds <= 0 {
		log.Warn("LLM_TIMEOUT_SECONDS must be positive; using default", "value", timeoutSeconds)
		timeoutSeconds = 120
	}
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		Environment: envutil.String("APP_ENV", "development"),
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "parampara-backend"),

		StoreBackend: strings.ToLower(envutil.String("STORE_BACKEND", "mongodb")),
		MongoURL:     envutil.String("MONGO_URL", ""),
		DBName:       envutil.String("DB_NAME", "parampara"),
		PostgresDSN:  envutil.String("POSTGRES_DSN", ""),
		SQLitePath:   envutil.String("SQLITE_PATH", "./data/parampara.db"),

		LLMKey:     envutil.String("EMERGENT_LLM_KEY", ""),
		LLMBaseURL: envutil.String("LLM_BASE_URL", llm.DefaultBaseURL),
		LLMTimeout: time.Duration(timeoutSeconds) * time.Second,
		RestoreModel: llm.ModelSpec{
			Provider: envutil.String("LLM_RESTORE_PROVIDER", "anthropic"),
			Model:    envutil.String("LLM_RESTORE_MODEL", "claude-sonnet-4-20250514"),
		},
		TranslateModel: llm.ModelSpec{
			Provider: envutil.String("LLM_TRANSLATE_PROVIDER", "gemini"),
			Model:    envutil.String("LLM_TRANSLATE_MODEL", "gemini-2.0-flash"),
		},
		StoryModel: llm.ModelSpec{
			Provider: envutil.String("LLM_STORY_PROVIDER", "openai"),
			Model:    envutil.String("LLM_STORY_MODEL", "gpt-5"),
		},

		EmbeddingsBackend:   strings.ToLower(envutil.String("EMBEDDINGS_BACKEND", "local")),
		EmbeddingsModel:     envutil.String("EMBEDDINGS_MODEL", "text-embedding-3-small"),
		EmbeddingsBaseURL:   envutil.String("EMBEDDINGS_BASE_URL", ""),
		EmbeddingsDimension: envutil.Int("EMBEDDINGS_DIMENSION", embeddings.DefaultDimension),

		OCRBackend:    strings.ToLower(envutil.String("OCR_BACKEND", "stub")),
		SpeechBackend: strings.ToLower(envutil.String("SPEECH_BACKEND", "stub")),

		AudioStore:      strings.ToLower(envutil.String("AUDIO_STORE", "local")),
		AudioArchiveDir: envutil.String("AUDIO_ARCHIVE_DIR", "./data/audio"),
		AudioGCSBucket:  envutil.String("AUDIO_GCS_BUCKET", ""),

		UploadDir:     envutil.String("UPLOAD_DIR", ""),
		SearchRanking: envutil.String("SEARCH_RANKING", "fixed"),
		CORSOrigins:   envutil.List("CORS_ORIGINS", []string{"*"}),
	}
	if cfg.EmbeddingsBaseURL == "" {
		cfg.EmbeddingsBaseURL = cfg.LLMBaseURL
	}
	if cfg.LLMKey == "" {
		log.Warn("EMERGENT_LLM_KEY is not set; restore, translate and story endpoints will fail")
	}
	return cfg
}
