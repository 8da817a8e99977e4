package services

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yungbote/parampara-backend/internal/data/db"
	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/data/repos/sqlstore"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/modules/heritage/normalize"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/embeddings"
	"github.com/yungbote/parampara-backend/internal/platform/llm"
	"github.com/yungbote/parampara-backend/internal/platform/llm/llmtest"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/platform/mediastore"
	"github.com/yungbote/parampara-backend/internal/platform/uploads"
)

var testModel = llm.ModelSpec{Provider: "anthropic", Model: "claude-sonnet-4-20250514"}

func newTestStore(t *testing.T) repos.Store {
	t.Helper()
	svc, err := db.NewSQLService(logger.Nop(), db.Config{
		Backend:    db.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "services.db"),
		Silent:     true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	st, err := sqlstore.New(svc, logger.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

func seedDocument(t *testing.T, st repos.Store, title, language, text string) *heritage.CulturalDocument {
	t.Helper()
	doc := &heritage.CulturalDocument{
		Record:       heritage.NewRecord(),
		Title:        title,
		Language:     language,
		OriginalText: text,
		Region:       "Unknown",
	}
	if err := st.Documents().Create(context.Background(), doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	return doc
}

func stage(t *testing.T, name, content string) *uploads.Staged {
	t.Helper()
	staged, cleanup, err := uploads.NewStager(t.TempDir()).Stage(strings.NewReader(content), name)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	t.Cleanup(cleanup)
	return staged
}

func TestIngestManuscript(t *testing.T) {
	st := newTestStore(t)
	svc := NewIngestService(logger.Nop(), st.Documents(), st.FolkSongs(), nil, nil, embeddings.NewLocal(embeddings.DefaultDimension), nil)

	res, err := svc.IngestManuscript(context.Background(), ManuscriptInput{
		File:       stage(t, "manuscript.txt", "scan"),
		ScriptType: "devanagari",
		Language:   "sanskrit",
	})
	if err != nil {
		t.Fatalf("IngestManuscript: %v", err)
	}
	if res.Status != "success" || res.DocumentID == "" || !strings.Contains(res.ExtractedText, "manuscript.txt") {
		t.Fatalf("unexpected result %+v", res)
	}
	doc, err := st.Documents().GetByID(context.Background(), res.DocumentID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if doc.Language != "sanskrit" || doc.Region != "Unknown" || len(doc.Embeddings) != embeddings.DefaultDimension {
		t.Fatalf("unexpected document %+v", doc)
	}
	if got := []string(doc.Tags); len(got) != 3 || got[0] != "ocr" || got[1] != "devanagari" || got[2] != "sanskrit" {
		t.Fatalf("unexpected tags %v", got)
	}
}

func TestIngestManuscriptDefaults(t *testing.T) {
	st := newTestStore(t)
	svc := NewIngestService(logger.Nop(), st.Documents(), st.FolkSongs(), nil, nil, nil, nil)
	res, err := svc.IngestManuscript(context.Background(), ManuscriptInput{File: stage(t, "leaf.png", "x")})
	if err != nil {
		t.Fatalf("IngestManuscript: %v", err)
	}
	if res.ScriptType != DefaultScriptType || res.Language != DefaultLanguage {
		t.Fatalf("expected defaults, got %+v", res)
	}
	if _, err := svc.IngestManuscript(context.Background(), ManuscriptInput{}); !errors.Is(err, apierr.ErrValidation) {
		t.Fatalf("expected validation error without file, got %v", err)
	}
}

func TestIngestFolkSongArchivesAudio(t *testing.T) {
	st := newTestStore(t)
	archive, err := mediastore.NewLocal(logger.Nop(), t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	svc := NewIngestService(logger.Nop(), st.Documents(), st.FolkSongs(), nil, nil, embeddings.NewLocal(64), archive)

	res, err := svc.IngestFolkSong(context.Background(), FolkSongInput{
		File:      stage(t, "bihu.wav", "RIFF"),
		Performer: "Kalpana",
		Region:    "Assam",
	})
	if err != nil {
		t.Fatalf("IngestFolkSong: %v", err)
	}
	if res.Status != "success" || res.Performer != "Kalpana" || res.Region != "Assam" {
		t.Fatalf("unexpected result %+v", res)
	}
	song, err := st.FolkSongs().GetByID(context.Background(), res.SongID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !strings.HasPrefix(song.AudioPath, "file://") || song.Language != DefaultLanguage || len(song.Embeddings) != 64 {
		t.Fatalf("unexpected song %+v", song)
	}
}

func TestRestoreFallbackWritesBack(t *testing.T) {
	st := newTestStore(t)
	doc := seedDocument(t, st, "Rigveda fragment", "sanskrit", "agnim ile ...")
	fake := llmtest.New("Agnim ile purohitam (restored)")
	svc := NewRestorationService(logger.Nop(), fake, testModel, st.Documents())

	res, err := svc.Restore(context.Background(), RestoreInput{Text: "agnim ile ...", Language: "sanskrit", DocumentID: doc.ID})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if res.Kind != normalize.KindFallback || res.Fallback.RestoredText != "Agnim ile purohitam (restored)" || res.Fallback.Confidence != 0.7 {
		t.Fatalf("unexpected result %+v", res)
	}
	calls := fake.Calls()
	if len(calls) != 1 || calls[0].Spec != testModel || !strings.Contains(calls[0].Prompt, "Ancient manuscript or inscription") {
		t.Fatalf("unexpected calls %+v", calls)
	}
	got, _ := st.Documents().GetByID(context.Background(), doc.ID)
	if got.RestoredText != "Agnim ile purohitam (restored)" || got.RestorationConfidence == nil || *got.RestorationConfidence != 0.7 {
		t.Fatalf("restoration not written back: %+v", got)
	}
}

func TestRestoreStructuredClampsConfidence(t *testing.T) {
	st := newTestStore(t)
	doc := seedDocument(t, st, "Inscription", "tamil", "...")
	fake := llmtest.New(`{"restored_text":"full","changes_made":["a"],"confidence":1.4,"explanation":"e"}`)
	svc := NewRestorationService(logger.Nop(), fake, testModel, st.Documents())

	res, err := svc.Restore(context.Background(), RestoreInput{Text: "...", Language: "tamil", DocumentID: doc.ID})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if res.Kind != normalize.KindStructured || res.Fields["confidence"] != 1.4 {
		t.Fatalf("structured payload should pass through unchanged: %+v", res.Fields)
	}
	got, _ := st.Documents().GetByID(context.Background(), doc.ID)
	if got.RestoredText != "full" || got.RestorationConfidence == nil || *got.RestorationConfidence != 1 {
		t.Fatalf("unexpected write-back %+v", got)
	}
}

func TestRestoreRejectsBeforeProviderCall(t *testing.T) {
	st := newTestStore(t)
	fake := llmtest.New("x")
	svc := NewRestorationService(logger.Nop(), fake, testModel, st.Documents())

	tests := []struct {
		name string
		in   RestoreInput
		kind error
	}{
		{"missing text", RestoreInput{Language: "hindi"}, apierr.ErrValidation},
		{"missing language", RestoreInput{Text: "t"}, apierr.ErrValidation},
		{"unknown document", RestoreInput{Text: "t", Language: "hindi", DocumentID: "nope"}, apierr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Restore(context.Background(), tt.in); !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
		})
	}
	if n := len(fake.Calls()); n != 0 {
		t.Fatalf("expected no provider calls, got %d", n)
	}
}

func TestRestoreProviderFailure(t *testing.T) {
	fake := llmtest.New("")
	fake.Err = apierr.ErrProvider
	svc := NewRestorationService(logger.Nop(), fake, testModel, nil)
	if _, err := svc.Restore(context.Background(), RestoreInput{Text: "t", Language: "hindi"}); !errors.Is(err, apierr.ErrProvider) {
		t.Fatalf("expected provider failure, got %v", err)
	}

	unconfigured := &llmtest.Factory{Unconfigured: true}
	svc = NewRestorationService(logger.Nop(), unconfigured, testModel, nil)
	if _, err := svc.Restore(context.Background(), RestoreInput{Text: "t", Language: "hindi"}); !errors.Is(err, apierr.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestTranslateWritesTargetLanguage(t *testing.T) {
	st := newTestStore(t)
	doc := seedDocument(t, st, "Doha", "hindi", "बुरा जो देखन मैं चला")
	fake := llmtest.New("```json\n{\"translated_text\":\"I went looking for evil\",\"cultural_notes\":\"Kabir\",\"confidence\":0.9}\n```")
	svc := NewTranslationService(logger.Nop(), fake, llm.ModelSpec{Provider: "gemini", Model: "gemini-2.0-flash"}, st.Documents())

	res, err := svc.Translate(context.Background(), TranslateInput{
		Text: doc.OriginalText, SourceLanguage: "hindi", TargetLanguage: "english", DocumentID: doc.ID,
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if res.Kind != normalize.KindStructured || res.Fields["cultural_notes"] != "Kabir" {
		t.Fatalf("unexpected result %+v", res)
	}
	got, _ := st.Documents().GetByID(context.Background(), doc.ID)
	if got.Translation["english"] != "I went looking for evil" {
		t.Fatalf("translation not written back: %v", got.Translation)
	}
}

func TestTranslateFallback(t *testing.T) {
	fake := llmtest.New("Plain prose translation")
	svc := NewTranslationService(logger.Nop(), fake, testModel, nil)
	res, err := svc.Translate(context.Background(), TranslateInput{Text: "t", SourceLanguage: "tamil", TargetLanguage: "english"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	want := normalize.NewTranslationFallback("Plain prose translation")
	if res.Kind != normalize.KindFallback || res.Fallback != want {
		t.Fatalf("unexpected fallback %+v", res.Fallback)
	}
	if _, err := svc.Translate(context.Background(), TranslateInput{Text: "t", SourceLanguage: "tamil"}); !errors.Is(err, apierr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStoryGenerate(t *testing.T) {
	st := newTestStore(t)
	doc := seedDocument(t, st, "Panchatantra", "sanskrit", "kathā")
	fake := llmtest.New(`[{"question":"Who?","options":["a","b"],"answer":"a"}]`)
	svc := NewStoryService(logger.Nop(), fake, llm.ModelSpec{Provider: "openai", Model: "gpt-5"}, st.Documents(), st.Stories())

	res, err := svc.Generate(context.Background(), StoryInput{DocumentID: doc.ID, StoryType: "quiz"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.StoryType != heritage.StoryTypeQuiz || res.SourceDocument != "Panchatantra" || res.StoryID == "" {
		t.Fatalf("unexpected result %+v", res)
	}
	story, err := st.Stories().GetByID(context.Background(), res.StoryID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if story.Title != "Panchatantra - Quiz" || story.Language != DefaultStoryLanguage || story.SourceDocumentID != doc.ID {
		t.Fatalf("unexpected story %+v", story)
	}
	if len(story.QuizQuestions) != 1 || story.QuizQuestions[0]["answer"] != "a" {
		t.Fatalf("quiz questions not persisted: %v", story.QuizQuestions)
	}
}

func TestStoryRejectsWithoutProviderCall(t *testing.T) {
	st := newTestStore(t)
	doc := seedDocument(t, st, "Gita", "sanskrit", "x")
	fake := llmtest.New("story")
	svc := NewStoryService(logger.Nop(), fake, testModel, st.Documents(), st.Stories())

	if _, err := svc.Generate(context.Background(), StoryInput{DocumentID: "missing", StoryType: "summary"}); !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), StoryInput{DocumentID: doc.ID, StoryType: "poem"}); !errors.Is(err, apierr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if n := len(fake.Calls()); n != 0 {
		t.Fatalf("expected no provider calls, got %d", n)
	}
	stories, err := st.Stories().List(context.Background(), repos.StoryFilter{}, 10)
	if err != nil || len(stories) != 0 {
		t.Fatalf("expected no stories written, got %d (%v)", len(stories), err)
	}
}

func seedSong(t *testing.T, st repos.Store, title, language string, vec []float64) {
	t.Helper()
	song := &heritage.FolkSong{
		Record:        heritage.NewRecord(),
		Title:         title,
		Language:      language,
		Region:        "Punjab",
		Transcription: "lyrics",
		Embeddings:    vec,
	}
	if err := st.FolkSongs().Create(context.Background(), song); err != nil {
		t.Fatalf("seed song: %v", err)
	}
}

func TestSearchSemanticFixedRanking(t *testing.T) {
	st := newTestStore(t)
	seedDocument(t, st, "Doc A", "hindi", "text a")
	seedDocument(t, st, "Doc B", "tamil", "text b")
	seedSong(t, st, "Heer", "punjabi", nil)
	svc := NewSearchService(logger.Nop(), st.Documents(), st.FolkSongs(), embeddings.NewLocal(32), RankingFixed)

	res, err := svc.Search(context.Background(), SearchInput{Query: "anything", Limit: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.SearchType != heritage.SearchSemantic || res.TotalFound != 3 || len(res.Results) != 3 {
		t.Fatalf("unexpected response %+v", res)
	}
	if res.Results[0].Type != "document" || *res.Results[0].Score != 0.8 || res.Results[2].Type != "folk_song" || *res.Results[2].Score != 0.7 {
		t.Fatalf("unexpected ranking %+v", res.Results)
	}

	filtered, err := svc.Search(context.Background(), SearchInput{Query: "x", Language: "tamil", Limit: 10})
	if err != nil || filtered.TotalFound != 1 || filtered.Results[0].Title != "Doc B" {
		t.Fatalf("language filter failed: %+v %v", filtered, err)
	}
}

func TestSearchSemanticSimilarityRanking(t *testing.T) {
	st := newTestStore(t)
	emb := embeddings.NewLocal(64)
	ctx := context.Background()
	vec, _ := emb.Embed(ctx, "monsoon harvest song")
	seedDocument(t, st, "Unembedded doc", "hindi", "x")
	seedSong(t, st, "Harvest", "punjabi", vec)
	svc := NewSearchService(logger.Nop(), st.Documents(), st.FolkSongs(), emb, RankingSimilarity)

	res, err := svc.Search(ctx, SearchInput{Query: "monsoon harvest song", Limit: 5})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Results[0].Title != "Harvest" || *res.Results[0].Score < 0.99 {
		t.Fatalf("expected the matching song first, got %+v", res.Results)
	}
	if *res.Results[1].Score != 0.8 {
		t.Fatalf("document without embedding should keep the fixed score, got %v", *res.Results[1].Score)
	}
}

func TestSearchKeyword(t *testing.T) {
	st := newTestStore(t)
	long := strings.Repeat("क", 250)
	seedDocument(t, st, "Ramayana Canto", "sanskrit", long)
	seedDocument(t, st, "Other", "hindi", "nothing relevant")
	seedSong(t, st, "Ramayana ballad", "hindi", nil)
	svc := NewSearchService(logger.Nop(), st.Documents(), st.FolkSongs(), nil, RankingFixed)

	res, err := svc.Search(context.Background(), SearchInput{Query: "ramayana", SearchType: "keyword", Limit: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.TotalFound != 1 || res.Results[0].Type != "document" || res.Results[0].Score != nil {
		t.Fatalf("unexpected keyword results %+v", res.Results)
	}
	if want := strings.Repeat("क", 200) + "..."; res.Results[0].Content != want {
		t.Fatalf("content not truncated to 200 runes")
	}
}

func TestSearchValidation(t *testing.T) {
	svc := NewSearchService(logger.Nop(), nil, nil, nil, RankingFixed)
	tests := []SearchInput{
		{Query: " ", Limit: 10},
		{Query: "q", SearchType: "fuzzy", Limit: 10},
		{Query: "q", Limit: 0},
	}
	for _, in := range tests {
		if _, err := svc.Search(context.Background(), in); !errors.Is(err, apierr.ErrValidation) {
			t.Fatalf("Search(%+v): expected validation error, got %v", in, err)
		}
	}
}

func TestParseRankingMode(t *testing.T) {
	if m, err := ParseRankingMode(""); err != nil || m != RankingFixed {
		t.Fatalf("default = %v, %v", m, err)
	}
	if m, err := ParseRankingMode("Similarity"); err != nil || m != RankingSimilarity {
		t.Fatalf("similarity = %v, %v", m, err)
	}
	if _, err := ParseRankingMode("bm25"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestAwardBadgeReawardAddsPoints(t *testing.T) {
	st := newTestStore(t)
	svc := NewProgressService(logger.Nop(), st.Progress())
	ctx := context.Background()

	for i, want := range []int{10, 20, 30} {
		award, err := svc.AwardBadge(ctx, "user-1", "scholar")
		if err != nil {
			t.Fatalf("AwardBadge #%d: %v", i, err)
		}
		if award.Points != BadgePoints || award.TotalPoints != want || award.Message != "Badge 'scholar' awarded!" {
			t.Fatalf("award #%d: %+v", i, award)
		}
	}
	p, err := svc.GetProgress(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if p.Points != 30 || len(p.Badges) != 1 {
		t.Fatalf("unexpected progress %+v", p)
	}
}

func TestGetProgressIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	svc := NewProgressService(logger.Nop(), st.Progress())
	ctx := context.Background()
	first, err := svc.GetProgress(ctx, "new-user")
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if first.Points != 0 || len(first.Badges) != 0 || first.StoriesCompleted != 0 {
		t.Fatalf("expected zero-valued progress, got %+v", first)
	}
	second, err := svc.GetProgress(ctx, "new-user")
	if err != nil || second.ID != first.ID {
		t.Fatalf("second access should return the same record: %+v %v", second, err)
	}
	if _, err := svc.GetProgress(ctx, " "); !errors.Is(err, apierr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type failingSongs struct {
	repos.FolkSongRepo
}

func (failingSongs) Create(ctx context.Context, song *heritage.FolkSong) error {
	return errors.New("disk full")
}

func TestIngestFolkSongRemovesArchiveWhenSaveFails(t *testing.T) {
	st := newTestStore(t)
	root := t.TempDir()
	archive, err := mediastore.NewLocal(logger.Nop(), root)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	svc := NewIngestService(logger.Nop(), st.Documents(), failingSongs{st.FolkSongs()}, nil, nil, embeddings.NewLocal(16), archive)

	_, err = svc.IngestFolkSong(context.Background(), FolkSongInput{File: stage(t, "lavani.wav", "RIFF")})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected save error, got %v", err)
	}

	var files []string
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if len(files) != 0 {
		t.Fatalf("archive should be empty after a failed save, found %v", files)
	}
}

func TestHealth(t *testing.T) {
	st := newTestStore(t)
	emb := embeddings.NewLocal(16)

	report := NewHealthService(logger.Nop(), st, llmtest.New("ok"), emb).Check(context.Background())
	if report.Status != "healthy" || report.Services["mongodb"] != "connected" || report.Services["llm"] != "ready" || report.Services["embeddings"] != "loaded" {
		t.Fatalf("unexpected report %+v", report)
	}

	report = NewHealthService(logger.Nop(), st, &llmtest.Factory{Unconfigured: true}, emb).Check(context.Background())
	if report.Status != "degraded" || report.Services["llm"] != "unconfigured" {
		t.Fatalf("unexpected report %+v", report)
	}
}

type countingEmbedder struct {
	calls int
}

func (e *countingEmbedder) Name() string   { return "remote:text-embedding-3-small" }
func (e *countingEmbedder) Dimension() int { return 8 }
func (e *countingEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	e.calls++
	return make([]float64, 8), nil
}

func TestHealthDoesNotCallEmbedder(t *testing.T) {
	st := newTestStore(t)
	emb := &countingEmbedder{}
	svc := NewHealthService(logger.Nop(), st, llmtest.New("ok"), emb)
	for i := 0; i < 3; i++ {
		if r := svc.Check(context.Background()); r.Services["embeddings"] != "loaded" {
			t.Fatalf("unexpected report %+v", r)
		}
	}
	if emb.calls != 0 {
		t.Fatalf("health check embedded %d times", emb.calls)
	}

	r := NewHealthService(logger.Nop(), st, llmtest.New("ok"), nil).Check(context.Background())
	if r.Status != "degraded" || r.Services["embeddings"] != "unavailable" {
		t.Fatalf("unexpected report without embedder %+v", r)
	}
}
