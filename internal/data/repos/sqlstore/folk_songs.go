package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type folkSongRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFolkSongRepo(db *gorm.DB, baseLog *logger.Logger) repos.FolkSongRepo {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &folkSongRepo{db: db, log: baseLog.With("repo", "FolkSongRepo")}
}

func (r *folkSongRepo) Create(ctx context.Context, song *heritage.FolkSong) error {
	return classify("create folk song", r.db.WithContext(ctx).Create(song).Error)
}

func (r *folkSongRepo) GetByID(ctx context.Context, id string) (*heritage.FolkSong, error) {
	var song heritage.FolkSong
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&song).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repos.NotFound("folk song", id)
	}
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func (r *folkSongRepo) List(ctx context.Context, filter repos.FolkSongFilter, limit int) ([]*heritage.FolkSong, error) {
	limit, err := repos.ClampLimit(limit)
	if err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).Model(&heritage.FolkSong{})
	if filter.Language != "" {
		q = q.Where("language = ?", filter.Language)
	}
	var out []*heritage.FolkSong
	if err := orderedByCreation(q).Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
