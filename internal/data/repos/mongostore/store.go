package mongostore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

const (
	collDocuments = "cultural_documents"
	collFolkSongs = "folk_songs"
	collStories   = "stories"
	collProgress  = "user_progress"
)

type Config struct {
	URI      string
	Database string
}

type store struct {
	log       *logger.Logger
	client    *mongo.Client
	db        *mongo.Database
	documents repos.DocumentRepo
	songs     repos.FolkSongRepo
	stories   repos.StoryRepo
	progress  repos.ProgressRepo
}

// Open connects, verifies the server and ensures indexes.
func Open(ctx context.Context, log *logger.Logger, cfg Config) (repos.Store, error) {
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, fmt.Errorf("missing MONGO_URL")
	}
	if strings.TrimSpace(cfg.Database) == "" {
		return nil, fmt.Errorf("missing DB_NAME")
	}
	if log == nil {
		log = logger.Nop()
	}
	serviceLog := log.With("service", "MongoStore", "database", cfg.Database)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	db := client.Database(cfg.Database)
	if err := ensureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	serviceLog.Info("mongo store connected")

	return &store{
		log:       serviceLog,
		client:    client,
		db:        db,
		documents: NewDocumentRepo(db, log),
		songs:     NewFolkSongRepo(db, log),
		stories:   NewStoryRepo(db, log),
		progress:  NewProgressRepo(db, log),
	}, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	uniqueID := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	byCreation := mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}}}
	byLanguage := mongo.IndexModel{Keys: bson.D{{Key: "language", Value: 1}}}

	plan := map[string][]mongo.IndexModel{
		collDocuments: {uniqueID, byCreation, byLanguage},
		collFolkSongs: {uniqueID, byCreation, byLanguage},
		collStories:   {uniqueID, byCreation, {Keys: bson.D{{Key: "source_document_id", Value: 1}}}},
		collProgress: {uniqueID, {
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}
	for coll, models := range plan {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func (s *store) Documents() repos.DocumentRepo { return s.documents }
func (s *store) FolkSongs() repos.FolkSongRepo { return s.songs }
func (s *store) Stories() repos.StoryRepo      { return s.stories }
func (s *store) Progress() repos.ProgressRepo  { return s.progress }
func (s *store) Backend() string               { return "mongodb" }

func (s *store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func listOptions(limit int) *options.FindOptions {
	return options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}})
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, limit int) ([]*T, error) {
	cur, err := coll.Find(ctx, filter, listOptions(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := make([]*T, 0, limit)
	for cur.Next(ctx) {
		var v T
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

// insertError turns a duplicate id into a conflict.
func insertError(op string, err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return apierr.Conflict(op, err)
	}
	return err
}
