package repos

import (
	"context"

	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
)

// MaxListLimit caps every list read.
const MaxListLimit = 100

type DocumentFilter struct {
	Language string
	// Keyword is matched as a case-insensitive literal substring of
	// title, original_text or description.
	Keyword string
}

type FolkSongFilter struct {
	Language string
}

type StoryFilter struct {
	SourceDocumentID string
}

type DocumentRepo interface {
	Create(ctx context.Context, doc *heritage.CulturalDocument) error
	GetByID(ctx context.Context, id string) (*heritage.CulturalDocument, error)
	List(ctx context.Context, filter DocumentFilter, limit int) ([]*heritage.CulturalDocument, error)
	UpdateRestoration(ctx context.Context, id string, restoredText string, confidence *float64) error
	SetTranslation(ctx context.Context, id string, language string, text string) error
}

type FolkSongRepo interface {
	Create(ctx context.Context, song *heritage.FolkSong) error
	GetByID(ctx context.Context, id string) (*heritage.FolkSong, error)
	List(ctx context.Context, filter FolkSongFilter, limit int) ([]*heritage.FolkSong, error)
}

type StoryRepo interface {
	Create(ctx context.Context, story *heritage.Story) error
	GetByID(ctx context.Context, id string) (*heritage.Story, error)
	List(ctx context.Context, filter StoryFilter, limit int) ([]*heritage.Story, error)
}

type ProgressRepo interface {
	// GetOrCreate returns the user's ledger, creating a zero-valued one on first
	// access. Concurrent first accesses converge on a single record.
	GetOrCreate(ctx context.Context, userID string) (*heritage.UserProgress, error)
	// AwardBadge adds badge to the set and adds points in one write, creating
	// the ledger if needed. Points are added even when the badge is already held.
	AwardBadge(ctx context.Context, userID string, badge string, points int) (*heritage.UserProgress, error)
}

// Store bundles the repositories of one backend.
type Store interface {
	Documents() DocumentRepo
	FolkSongs() FolkSongRepo
	Stories() StoryRepo
	Progress() ProgressRepo
	Backend() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ClampLimit rejects non-positive limits and caps the rest at MaxListLimit.
func ClampLimit(limit int) (int, error) {
	if limit <= 0 {
		return 0, apierr.Validation("limit must be positive (got %d)", limit)
	}
	if limit > MaxListLimit {
		return MaxListLimit, nil
	}
	return limit, nil
}

// NotFound is the error repos return for an unknown id.
func NotFound(kind, id string) error {
	return apierr.NotFound("%s %s not found", kind, id)
}
