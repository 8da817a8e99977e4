package sqlstore

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/parampara-backend/internal/data/db"
	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type store struct {
	svc       *db.SQLService
	documents repos.DocumentRepo
	songs     repos.FolkSongRepo
	stories   repos.StoryRepo
	progress  repos.ProgressRepo
}

// New wraps an open SQL service and migrates the schema.
func New(svc *db.SQLService, log *logger.Logger) (repos.Store, error) {
	if err := db.AutoMigrateAll(svc.DB()); err != nil {
		return nil, err
	}
	g := svc.DB()
	if err := backfillSearchText(g); err != nil {
		return nil, err
	}
	return &store{
		svc:       svc,
		documents: NewDocumentRepo(g, log),
		songs:     NewFolkSongRepo(g, log),
		stories:   NewStoryRepo(g, log),
		progress:  NewProgressRepo(g, log),
	}, nil
}

func (s *store) Documents() repos.DocumentRepo { return s.documents }
func (s *store) FolkSongs() repos.FolkSongRepo { return s.songs }
func (s *store) Stories() repos.StoryRepo      { return s.stories }
func (s *store) Progress() repos.ProgressRepo  { return s.progress }
func (s *store) Backend() string               { return s.svc.Backend() }

func (s *store) Ping(ctx context.Context) error  { return s.svc.Ping(ctx) }
func (s *store) Close(ctx context.Context) error { return s.svc.Close() }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere in a
// column folded with heritage.FoldText.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(heritage.FoldText(s)) + "%"
}

// backfillSearchText folds rows written before the search_text column existed.
func backfillSearchText(g *gorm.DB) error {
	var batch []*heritage.CulturalDocument
	return g.Select("id", "title", "original_text", "description").
		Where("search_text IS NULL OR search_text = ''").
		FindInBatches(&batch, 200, func(tx *gorm.DB, _ int) error {
			for _, d := range batch {
				d.RefreshSearchText()
				if err := g.Model(&heritage.CulturalDocument{}).
					Where("id = ?", d.ID).
					UpdateColumn("search_text", d.SearchText).Error; err != nil {
					return err
				}
			}
			return nil
		}).Error
}

func orderedByCreation(q *gorm.DB) *gorm.DB {
	return q.Order("created_at ASC").Order("id ASC")
}
