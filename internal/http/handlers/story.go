package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/parampara-backend/internal/http/response"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/services"
)

type StoryHandler struct {
	log   *logger.Logger
	story services.StoryService
}

func NewStoryHandler(log *logger.Logger, story services.StoryService) *StoryHandler {
	return &StoryHandler{log: log.With("handler", "StoryHandler"), story: story}
}

// POST /api/story/generate
// body: { "document_id": "...", "story_type": "summary|interactive|quiz", "target_language": "english" }
func (h *StoryHandler) Generate(c *gin.Context) {
	var req struct {
		DocumentID     string `json:"document_id"`
		StoryType      string `json:"story_type"`
		TargetLanguage string `json:"target_language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondFailure(c, "Story generation", bindError(err))
		return
	}
	res, err := h.story.Generate(c.Request.Context(), services.StoryInput{
		DocumentID:     req.DocumentID,
		StoryType:      req.StoryType,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		h.log.Error("Story generation error", "document_id", req.DocumentID, "error", err)
		response.RespondFailure(c, "Story generation", err)
		return
	}
	response.RespondOK(c, res)
}
