package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/domain/heritage"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

// BadgePoints is added on every award, including re-awards of a held badge.
const BadgePoints = 10

type BadgeAward struct {
	Message     string `json:"message"`
	Points      int    `json:"points"`
	TotalPoints int    `json:"total_points"`
}

type ProgressService interface {
	GetProgress(ctx context.Context, userID string) (*heritage.UserProgress, error)
	AwardBadge(ctx context.Context, userID, badge string) (*BadgeAward, error)
}

type progressService struct {
	log      *logger.Logger
	progress repos.ProgressRepo
}

func NewProgressService(baseLog *logger.Logger, progress repos.ProgressRepo) ProgressService {
	return &progressService{
		log:      baseLog.With("service", "ProgressService"),
		progress: progress,
	}
}

func (s *progressService) GetProgress(ctx context.Context, userID string) (*heritage.UserProgress, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apierr.Validation("user_id is required")
	}
	return s.progress.GetOrCreate(ctx, userID)
}

func (s *progressService) AwardBadge(ctx context.Context, userID, badge string) (*BadgeAward, error) {
	userID, badge = strings.TrimSpace(userID), strings.TrimSpace(badge)
	if userID == "" || badge == "" {
		return nil, apierr.Validation("user_id and badge_name are required")
	}
	p, err := s.progress.AwardBadge(ctx, userID, badge, BadgePoints)
	if err != nil {
		return nil, fmt.Errorf("award badge: %w", err)
	}
	s.log.Info("badge awarded", "user_id", userID, "badge", badge, "total_points", p.Points)
	return &BadgeAward{
		Message:     fmt.Sprintf("Badge '%s' awarded!", badge),
		Points:      BadgePoints,
		TotalPoints: p.Points,
	}, nil
}
