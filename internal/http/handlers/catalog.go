package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/parampara-backend/internal/http/response"
	"github.com/yungbote/parampara-backend/internal/services"
)

type CatalogHandler struct {
	catalog services.CatalogService
}

func NewCatalogHandler(catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GET /api/documents?language=&limit=
func (h *CatalogHandler) ListDocuments(c *gin.Context) {
	limit, err := listLimit(c)
	if err != nil {
		response.RespondFailure(c, "Document listing", err)
		return
	}
	docs, err := h.catalog.ListDocuments(c.Request.Context(), c.Query("language"), limit)
	if err != nil {
		response.RespondFailure(c, "Document listing", err)
		return
	}
	response.RespondOK(c, docs)
}

// GET /api/folk-songs?language=&limit=
func (h *CatalogHandler) ListFolkSongs(c *gin.Context) {
	limit, err := listLimit(c)
	if err != nil {
		response.RespondFailure(c, "Folk song listing", err)
		return
	}
	songs, err := h.catalog.ListFolkSongs(c.Request.Context(), c.Query("language"), limit)
	if err != nil {
		response.RespondFailure(c, "Folk song listing", err)
		return
	}
	response.RespondOK(c, songs)
}

// GET /api/stories?document_id=&limit=
func (h *CatalogHandler) ListStories(c *gin.Context) {
	limit, err := listLimit(c)
	if err != nil {
		response.RespondFailure(c, "Story listing", err)
		return
	}
	stories, err := h.catalog.ListStories(c.Request.Context(), c.Query("document_id"), limit)
	if err != nil {
		response.RespondFailure(c, "Story listing", err)
		return
	}
	response.RespondOK(c, stories)
}
