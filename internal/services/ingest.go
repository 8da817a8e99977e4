package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/ingestion/extractor"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/embeddings"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/platform/mediastore"
	"github.com/yungbote/parampara-backend/internal/platform/observability"
	"github.com/yungbote/parampara-backend/internal/platform/uploads"
)

const (
	DefaultScriptType = "devanagari"
	DefaultLanguage   = "hindi"
	unknownRegion     = "Unknown"
	folkSongMediaPath = "folk_songs"
)

type IngestService interface {
	IngestManuscript(ctx context.Context, in ManuscriptInput) (*ManuscriptResult, error)
	IngestFolkSong(ctx context.Context, in FolkSongInput) (*FolkSongResult, error)
}

// ManuscriptInput describes an already staged manuscript scan. The caller owns
// the staged file and removes it once the call returns.
type ManuscriptInput struct {
	File       *uploads.Staged
	ScriptType string
	Language   string
}

type ManuscriptResult struct {
	DocumentID    string `json:"document_id"`
	ExtractedText string `json:"extracted_text"`
	ScriptType    string `json:"script_type"`
	Language      string `json:"language"`
	Status        string `json:"status"`
}

type FolkSongInput struct {
	File      *uploads.Staged
	Performer string
	Region    string
	Language  string
}

type FolkSongResult struct {
	SongID        string `json:"song_id"`
	Transcription string `json:"transcription"`
	Performer     string `json:"performer"`
	Region        string `json:"region"`
	Status        string `json:"status"`
}

type ingestService struct {
	log         *logger.Logger
	documents   repos.DocumentRepo
	songs       repos.FolkSongRepo
	ocr         extractor.OCR
	transcriber extractor.Transcriber
	embedder    embeddings.Embedder
	archive     mediastore.Archive
}

func NewIngestService(
	baseLog *logger.Logger,
	documents repos.DocumentRepo,
	songs repos.FolkSongRepo,
	ocr extractor.OCR,
	transcriber extractor.Transcriber,
	embedder embeddings.Embedder,
	archive mediastore.Archive,
) IngestService {
	if ocr == nil {
		ocr = extractor.StubOCR{}
	}
	if transcriber == nil {
		transcriber = extractor.StubTranscriber{}
	}
	if archive == nil {
		archive = mediastore.None{}
	}
	return &ingestService{
		log:         baseLog.With("service", "IngestService"),
		documents:   documents,
		songs:       songs,
		ocr:         ocr,
		transcriber: transcriber,
		embedder:    embedder,
		archive:     archive,
	}
}

func (s *ingestService) IngestManuscript(ctx context.Context, in ManuscriptInput) (*ManuscriptResult, error) {
	if in.File == nil {
		return nil, apierr.Validation("file is required")
	}
	scriptType := defaultString(in.ScriptType, DefaultScriptType)
	language := defaultString(in.Language, DefaultLanguage)

	ctx, span := observability.StartSpan(ctx, "ingest.manuscript", "ocr.engine", s.ocr.Name(), "language", language)
	defer span.End()

	text, err := s.ocr.ExtractText(ctx, in.File.Path, in.File.Filename, extractor.Hint{ScriptType: scriptType, Language: language})
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	doc := &heritage.CulturalDocument{
		Record:       heritage.NewRecord(),
		Title:        in.File.Filename,
		ScriptType:   scriptType,
		Language:     language,
		OriginalText: text,
		Region:       unknownRegion,
		Tags:         []string{"ocr", scriptType, language},
	}
	if doc.Embeddings, err = s.embed(ctx, text); err != nil {
		return nil, err
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	s.log.Info("manuscript ingested", "document_id", doc.ID, "ocr", s.ocr.Name(), "bytes", in.File.Size)

	return &ManuscriptResult{
		DocumentID:    doc.ID,
		ExtractedText: text,
		ScriptType:    scriptType,
		Language:      language,
		Status:        "success",
	}, nil
}

func (s *ingestService) IngestFolkSong(ctx context.Context, in FolkSongInput) (*FolkSongResult, error) {
	if in.File == nil {
		return nil, apierr.Validation("file is required")
	}
	language := defaultString(in.Language, DefaultLanguage)

	ctx, span := observability.StartSpan(ctx, "ingest.folk_song", "speech.engine", s.transcriber.Name(), "language", language)
	defer span.End()

	transcription, err := s.transcriber.Transcribe(ctx, in.File.Path, in.File.Filename, language)
	if err != nil {
		return nil, fmt.Errorf("transcribe audio: %w", err)
	}

	song := &heritage.FolkSong{
		Record:        heritage.NewRecord(),
		Title:         in.File.Filename,
		Performer:     in.Performer,
		Region:        in.Region,
		Language:      language,
		Transcription: transcription,
	}
	if song.Embeddings, err = s.embed(ctx, transcription); err != nil {
		return nil, err
	}
	key := mediastore.Key(folkSongMediaPath, song.ID, in.File.Filename)
	if song.AudioPath, err = s.archiveAudio(ctx, key, in.File); err != nil {
		return nil, err
	}
	if err := s.songs.Create(ctx, song); err != nil {
		if derr := s.archive.Delete(context.WithoutCancel(ctx), key); derr != nil {
			s.log.Warn("archived audio left behind", "key", key, "error", derr)
		}
		return nil, fmt.Errorf("save folk song: %w", err)
	}
	s.log.Info("folk song ingested", "song_id", song.ID, "speech", s.transcriber.Name(), "archive", s.archive.Kind())

	return &FolkSongResult{
		SongID:        song.ID,
		Transcription: transcription,
		Performer:     in.Performer,
		Region:        in.Region,
		Status:        "success",
	}, nil
}

// archiveAudio copies the staged recording into the media archive before the
// staged file is removed. An empty URI means no archive is configured.
func (s *ingestService) archiveAudio(ctx context.Context, key string, staged *uploads.Staged) (string, error) {
	f, err := os.Open(staged.Path)
	if err != nil {
		return "", fmt.Errorf("open staged audio: %w", err)
	}
	defer f.Close()
	uri, err := s.archive.Put(ctx, key, f)
	if err != nil {
		return "", fmt.Errorf("archive audio: %w", err)
	}
	return uri, nil
}

func (s *ingestService) embed(ctx context.Context, text string) ([]float64, error) {
	if s.embedder == nil {
		return nil, nil
	}
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed text: %w", err)
	}
	return vec, nil
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
