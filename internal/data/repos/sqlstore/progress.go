package sqlstore

import (
	"context"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) repos.ProgressRepo {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

func (r *progressRepo) GetOrCreate(ctx context.Context, userID string) (*heritage.UserProgress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apierr.Validation("user_id required")
	}
	p, err := getOrCreate(r.db.WithContext(ctx), userID, false)
	if err != nil {
		return nil, classify("get progress", err)
	}
	return p, nil
}

// getOrCreate inserts a zero-valued ledger unless one exists, then reads it back.
// The insert is a no-op on user_id conflict so racing first accesses converge.
func getOrCreate(tx *gorm.DB, userID string, lock bool) (*heritage.UserProgress, error) {
	fresh := heritage.NewUserProgress(userID)
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(fresh).Error; err != nil {
		return nil, err
	}
	q := tx
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out heritage.UserProgress
	if err := q.Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *progressRepo) AwardBadge(ctx context.Context, userID string, badge string, points int) (*heritage.UserProgress, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(badge) == "" {
		return nil, apierr.Validation("user_id and badge_name required")
	}
	var out *heritage.UserProgress
	err := inTx(ctx, r.db, "award badge", func(tx *gorm.DB) error {
		p, err := getOrCreate(tx, userID, true)
		if err != nil {
			return err
		}
		badges := datatypes.JSONSlice[string]{}
		badges = append(badges, p.Badges...)
		if !p.HasBadge(badge) {
			badges = append(badges, badge)
		}
		if err := tx.Model(&heritage.UserProgress{}).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"badges":     badges,
				"points":     gorm.Expr("points + ?", points),
				"updated_at": time.Now().UTC(),
			}).Error; err != nil {
			return err
		}
		var after heritage.UserProgress
		if err := tx.Where("user_id = ?", userID).First(&after).Error; err != nil {
			return err
		}
		out = &after
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Debug("badge awarded", "user_id", userID, "badge", badge, "points", out.Points)
	return out, nil
}
