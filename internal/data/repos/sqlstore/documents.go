package sqlstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) repos.DocumentRepo {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &documentRepo{db: db, log: baseLog.With("repo", "DocumentRepo")}
}

func (r *documentRepo) Create(ctx context.Context, doc *heritage.CulturalDocument) error {
	if doc.Tags == nil {
		doc.Tags = datatypes.JSONSlice[string]{}
	}
	if doc.Translation == nil {
		doc.Translation = datatypes.JSONMap{}
	}
	doc.RefreshSearchText()
	return classify("create document", r.db.WithContext(ctx).Create(doc).Error)
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*heritage.CulturalDocument, error) {
	var doc heritage.CulturalDocument
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repos.NotFound("document", id)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, filter repos.DocumentFilter, limit int) ([]*heritage.CulturalDocument, error) {
	limit, err := repos.ClampLimit(limit)
	if err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).Model(&heritage.CulturalDocument{})
	if filter.Language != "" {
		q = q.Where("language = ?", filter.Language)
	}
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		pat := containsPattern(kw)
		q = q.Where("search_text LIKE ? ESCAPE '\\'", pat)
	}
	var out []*heritage.CulturalDocument
	if err := orderedByCreation(q).Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *documentRepo) UpdateRestoration(ctx context.Context, id string, restoredText string, confidence *float64) error {
	updates := map[string]any{
		"restored_text": restoredText,
		"updated_at":    time.Now().UTC(),
	}
	if confidence != nil {
		c := heritage.ClampConfidence(*confidence)
		updates["restoration_confidence"] = c
	}
	res := r.db.WithContext(ctx).
		Model(&heritage.CulturalDocument{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repos.NotFound("document", id)
	}
	return nil
}

func (r *documentRepo) SetTranslation(ctx context.Context, id string, language string, text string) error {
	return inTx(ctx, r.db, "set translation", func(tx *gorm.DB) error {
		var doc heritage.CulturalDocument
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "translation").
			Where("id = ?", id).
			First(&doc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repos.NotFound("document", id)
		}
		if err != nil {
			return err
		}
		tr := datatypes.JSONMap{}
		for k, v := range doc.Translation {
			tr[k] = v
		}
		tr[language] = text
		return tx.Model(&heritage.CulturalDocument{}).
			Where("id = ?", id).
			Updates(map[string]any{"translation": tr, "updated_at": time.Now().UTC()}).Error
	})
}
