package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/parampara-backend/internal/http/response"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/services"
)

type UserHandler struct {
	log      *logger.Logger
	progress services.ProgressService
}

func NewUserHandler(log *logger.Logger, progress services.ProgressService) *UserHandler {
	return &UserHandler{log: log.With("handler", "UserHandler"), progress: progress}
}

// GET /api/user/:user_id/progress
func (h *UserHandler) GetProgress(c *gin.Context) {
	p, err := h.progress.GetProgress(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.RespondFailure(c, "Progress lookup", err)
		return
	}
	response.RespondOK(c, p)
}

// POST /api/user/:user_id/badge/:badge_name
func (h *UserHandler) AwardBadge(c *gin.Context) {
	award, err := h.progress.AwardBadge(c.Request.Context(), c.Param("user_id"), c.Param("badge_name"))
	if err != nil {
		response.RespondFailure(c, "Badge award", err)
		return
	}
	response.RespondOK(c, award)
}
