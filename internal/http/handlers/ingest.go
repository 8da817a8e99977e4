package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/parampara-backend/internal/http/response"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/platform/uploads"
	"github.com/yungbote/parampara-backend/internal/services"
)

type IngestHandler struct {
	log    *logger.Logger
	ingest services.IngestService
	stager *uploads.Stager
}

func NewIngestHandler(log *logger.Logger, ingest services.IngestService, stager *uploads.Stager) *IngestHandler {
	if stager == nil {
		stager = uploads.NewStager("")
	}
	return &IngestHandler{
		log:    log.With("handler", "IngestHandler"),
		ingest: ingest,
		stager: stager,
	}
}

// POST /api/ocr/upload (multipart/form-data)
// fields: file, script_type (default "devanagari"), language (default "hindi")
func (h *IngestHandler) UploadManuscript(c *gin.Context) {
	staged, cleanup, ok := h.stageFile(c)
	if !ok {
		return
	}
	defer cleanup()

	res, err := h.ingest.IngestManuscript(c.Request.Context(), services.ManuscriptInput{
		File:       staged,
		ScriptType: c.DefaultPostForm("script_type", services.DefaultScriptType),
		Language:   c.DefaultPostForm("language", services.DefaultLanguage),
	})
	if err != nil {
		h.log.Error("OCR upload error", "error", err)
		response.RespondFailure(c, "OCR processing", err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/speech/upload (multipart/form-data)
// fields: file, performer, region, language (default "hindi")
func (h *IngestHandler) UploadFolkSong(c *gin.Context) {
	staged, cleanup, ok := h.stageFile(c)
	if !ok {
		return
	}
	defer cleanup()

	res, err := h.ingest.IngestFolkSong(c.Request.Context(), services.FolkSongInput{
		File:      staged,
		Performer: c.PostForm("performer"),
		Region:    c.PostForm("region"),
		Language:  c.DefaultPostForm("language", services.DefaultLanguage),
	})
	if err != nil {
		h.log.Error("Speech upload error", "error", err)
		response.RespondFailure(c, "Speech processing", err)
		return
	}
	response.RespondOK(c, res)
}

// stageFile copies the "file" part to the staging area. On failure the
// response is already written.
func (h *IngestHandler) stageFile(c *gin.Context) (*uploads.Staged, func(), bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "file is required")
		return nil, nil, false
	}
	staged, cleanup, err := h.stager.StageMultipart(fh)
	if err != nil {
		h.log.Error("stage upload failed", "filename", fh.Filename, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "Upload failed: "+err.Error())
		return nil, nil, false
	}
	return staged, cleanup, true
}
