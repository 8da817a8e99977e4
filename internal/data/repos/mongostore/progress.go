package mongostore

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/google/uuid"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type progressRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewProgressRepo(db *mongo.Database, baseLog *logger.Logger) repos.ProgressRepo {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &progressRepo{coll: db.Collection(collProgress), log: baseLog.With("repo", "ProgressRepo")}
}

// insertDefaults are the fields a new ledger starts with. Fields touched by
// $addToSet/$inc in the same update must not appear here.
func insertDefaults(now time.Time, withCounters bool) bson.M {
	m := bson.M{
		"id":                       uuid.New().String(),
		"created_at":               now,
		"documents_explored":       bson.A{},
		"translations_contributed": 0,
		"stories_completed":        0,
	}
	if withCounters {
		m["badges"] = bson.A{}
		m["points"] = 0
		m["updated_at"] = now
	}
	return m
}

func (r *progressRepo) GetOrCreate(ctx context.Context, userID string) (*heritage.UserProgress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apierr.Validation("user_id required")
	}
	update := bson.M{"$setOnInsert": insertDefaults(time.Now().UTC(), true)}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	return r.upsert(ctx, userID, update, opts)
}

func (r *progressRepo) AwardBadge(ctx context.Context, userID string, badge string, points int) (*heritage.UserProgress, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(badge) == "" {
		return nil, apierr.Validation("user_id and badge_name required")
	}
	now := time.Now().UTC()
	update := bson.M{
		"$addToSet":    bson.M{"badges": badge},
		"$inc":         bson.M{"points": points},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": insertDefaults(now, false),
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	p, err := r.upsert(ctx, userID, update, opts)
	if err != nil {
		return nil, err
	}
	r.log.Debug("badge awarded", "user_id", userID, "badge", badge, "points", p.Points)
	return p, nil
}

// upsert runs a user_id-keyed FindOneAndUpdate. Two racing upserts can both
// miss and one then fails on the unique index; the retry matches the winner.
func (r *progressRepo) upsert(ctx context.Context, userID string, update bson.M, opts *options.FindOneAndUpdateOptions) (*heritage.UserProgress, error) {
	var out heritage.UserProgress
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&out)
	if mongo.IsDuplicateKeyError(err) {
		out = heritage.UserProgress{}
		err = r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&out)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

var _ repos.ProgressRepo = (*progressRepo)(nil)
