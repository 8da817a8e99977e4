package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type storyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoryRepo(db *gorm.DB, baseLog *logger.Logger) repos.StoryRepo {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &storyRepo{db: db, log: baseLog.With("repo", "StoryRepo")}
}

func (r *storyRepo) Create(ctx context.Context, story *heritage.Story) error {
	return classify("create story", r.db.WithContext(ctx).Create(story).Error)
}

func (r *storyRepo) GetByID(ctx context.Context, id string) (*heritage.Story, error) {
	var story heritage.Story
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&story).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repos.NotFound("story", id)
	}
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *storyRepo) List(ctx context.Context, filter repos.StoryFilter, limit int) ([]*heritage.Story, error) {
	limit, err := repos.ClampLimit(limit)
	if err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).Model(&heritage.Story{})
	if filter.SourceDocumentID != "" {
		q = q.Where("source_document_id = ?", filter.SourceDocumentID)
	}
	var out []*heritage.Story
	if err := orderedByCreation(q).Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
