package heritage

import (
	"time"

	"github.com/google/uuid"
)

// Record is the base shape shared by every persisted entity.
type Record struct {
	ID        string    `gorm:"type:varchar(36);primaryKey;column:id" bson:"id" json:"id"`
	CreatedAt time.Time `gorm:"not null;column:created_at" bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" bson:"updated_at" json:"updated_at"`
}

// NewRecord stamps a fresh id and identical UTC creation/update times.
func NewRecord() Record {
	now := time.Now().UTC()
	return Record{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch advances UpdatedAt, never moving it before CreatedAt.
func (r *Record) Touch() {
	now := time.Now().UTC()
	if now.Before(r.CreatedAt) {
		now = r.CreatedAt
	}
	r.UpdatedAt = now
}

// ClampConfidence keeps a model-reported confidence inside [0,1].
func ClampConfidence(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
