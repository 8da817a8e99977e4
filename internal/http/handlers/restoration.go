package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/parampara-backend/internal/http/response"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/services"
)

type RestorationHandler struct {
	log         *logger.Logger
	restoration services.RestorationService
	translation services.TranslationService
}

func NewRestorationHandler(log *logger.Logger, restoration services.RestorationService, translation services.TranslationService) *RestorationHandler {
	return &RestorationHandler{
		log:         log.With("handler", "RestorationHandler"),
		restoration: restoration,
		translation: translation,
	}
}

type restoreRequest struct {
	Text       string `json:"text"`
	Language   string `json:"language"`
	Context    string `json:"context"`
	DocumentID string `json:"document_id"`
}

// POST /api/restore
func (h *RestorationHandler) Restore(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondFailure(c, "Text restoration", bindError(err))
		return
	}
	res, err := h.restoration.Restore(c.Request.Context(), services.RestoreInput{
		Text:       req.Text,
		Language:   req.Language,
		Context:    req.Context,
		DocumentID: req.DocumentID,
	})
	if err != nil {
		h.log.Error("Restoration error", "error", err)
		response.RespondFailure(c, "Text restoration", err)
		return
	}
	response.RespondOK(c, res.Payload())
}

type translateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	DocumentID     string `json:"document_id"`
}

// POST /api/translate
func (h *RestorationHandler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondFailure(c, "Translation", bindError(err))
		return
	}
	res, err := h.translation.Translate(c.Request.Context(), services.TranslateInput{
		Text:           req.Text,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		DocumentID:     req.DocumentID,
	})
	if err != nil {
		h.log.Error("Translation error", "error", err)
		response.RespondFailure(c, "Translation", err)
		return
	}
	response.RespondOK(c, res.Payload())
}
