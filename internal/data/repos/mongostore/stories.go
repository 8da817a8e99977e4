package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

type storyRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewStoryRepo(db *mongo.Database, baseLog *logger.Logger) repos.StoryRepo {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &storyRepo{coll: db.Collection(collStories), log: baseLog.With("repo", "StoryRepo")}
}

func (r *storyRepo) Create(ctx context.Context, story *heritage.Story) error {
	_, err := r.coll.InsertOne(ctx, story)
	return insertError("create story", err)
}

func (r *storyRepo) GetByID(ctx context.Context, id string) (*heritage.Story, error) {
	var story heritage.Story
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&story)
	if errors.Is(err, mongo.ErrNoDocuments) {
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
	q := bson.M{}
	if filter.SourceDocumentID != "" {
		q["source_document_id"] = filter.SourceDocumentID
	}
	return findAll[heritage.Story](ctx, r.coll, q, limit)
}
