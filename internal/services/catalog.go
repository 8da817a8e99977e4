package services

import (
	"context"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

// CatalogService serves the capped listing endpoints.
type CatalogService interface {
	ListDocuments(ctx context.Context, language string, limit int) ([]*heritage.CulturalDocument, error)
	ListFolkSongs(ctx context.Context, language string, limit int) ([]*heritage.FolkSong, error)
	ListStories(ctx context.Context, documentID string, limit int) ([]*heritage.Story, error)
}

type catalogService struct {
	log   *logger.Logger
	store repos.Store
}

func NewCatalogService(baseLog *logger.Logger, store repos.Store) CatalogService {
	return &catalogService{
		log:   baseLog.With("service", "CatalogService"),
		store: store,
	}
}

func (s *catalogService) ListDocuments(ctx context.Context, language string, limit int) ([]*heritage.CulturalDocument, error) {
	return s.store.Documents().List(ctx, repos.DocumentFilter{Language: language}, limit)
}

func (s *catalogService) ListFolkSongs(ctx context.Context, language string, limit int) ([]*heritage.FolkSong, error) {
	return s.store.FolkSongs().List(ctx, repos.FolkSongFilter{Language: language}, limit)
}

func (s *catalogService) ListStories(ctx context.Context, documentID string, limit int) ([]*heritage.Story, error) {
	return s.store.Stories().List(ctx, repos.StoryFilter{SourceDocumentID: documentID}, limit)
}
