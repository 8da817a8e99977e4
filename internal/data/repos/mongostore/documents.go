package mongostore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/datatypes"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type documentRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewDocumentRepo(db *mongo.Database, baseLog *logger.Logger) repos.DocumentRepo {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &documentRepo{coll: db.Collection(collDocuments), log: baseLog.With("repo", "DocumentRepo")}
}

func (r *documentRepo) Create(ctx context.Context, doc *heritage.CulturalDocument) error {
	if doc.Tags == nil {
		doc.Tags = datatypes.JSONSlice[string]{}
	}
	if doc.Translation == nil {
		doc.Translation = datatypes.JSONMap{}
	}
	_, err := r.coll.InsertOne(ctx, doc)
	return insertError("create document", err)
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*heritage.CulturalDocument, error) {
	var doc heritage.CulturalDocument
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repos.NotFound("document", id)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// keywordRegex matches kw literally, case-insensitively.
func keywordRegex(kw string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(kw), Options: "i"}
}

func (r *documentRepo) List(ctx context.Context, filter repos.DocumentFilter, limit int) ([]*heritage.CulturalDocument, error) {
	limit, err := repos.ClampLimit(limit)
	if err != nil {
		return nil, err
	}
	q := bson.M{}
	if filter.Language != "" {
		q["language"] = filter.Language
	}
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		re := keywordRegex(kw)
		q["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"original_text": re},
			bson.M{"description": re},
		}
	}
	return findAll[heritage.CulturalDocument](ctx, r.coll, q, limit)
}

func (r *documentRepo) UpdateRestoration(ctx context.Context, id string, restoredText string, confidence *float64) error {
	set := bson.M{
		"restored_text": restoredText,
		"updated_at":    time.Now().UTC(),
	}
	if confidence != nil {
		set["restoration_confidence"] = heritage.ClampConfidence(*confidence)
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repos.NotFound("document", id)
	}
	return nil
}

func (r *documentRepo) SetTranslation(ctx context.Context, id string, language string, text string) error {
	if language == "" || strings.ContainsAny(language, ".$") {
		return apierr.Validation("invalid translation language %q", language)
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"translation." + language: text,
		"updated_at":              time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repos.NotFound("document", id)
	}
	return nil
}
