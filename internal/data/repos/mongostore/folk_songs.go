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

type folkSongRepo struct {
	coll *mongo.Collection
	log  *logger.Logger
}

func NewFolkSongRepo(db *mongo.Database, baseLog *logger.Logger) repos.FolkSongRepo {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &folkSongRepo{coll: db.Collection(collFolkSongs), log: baseLog.With("repo", "FolkSongRepo")}
}

func (r *folkSongRepo) Create(ctx context.Context, song *heritage.FolkSong) error {
	_, err := r.coll.InsertOne(ctx, song)
	return insertError("create folk song", err)
}

func (r *folkSongRepo) GetByID(ctx context.Context, id string) (*heritage.FolkSong, error) {
	var song heritage.FolkSong
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&song)
	if errors.Is(err, mongo.ErrNoDocuments) {
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
	q := bson.M{}
	if filter.Language != "" {
		q["language"] = filter.Language
	}
	return findAll[heritage.FolkSong](ctx, r.coll, q, limit)
}
