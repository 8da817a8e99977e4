package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/parampara-backend/internal/http/response"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
	"github.com/yungbote/parampara-backend/internal/services"
)

type SearchHandler struct {
	log    *logger.Logger
	search services.SearchService
}

func NewSearchHandler(log *logger.Logger, search services.SearchService) *SearchHandler {
	return &SearchHandler{log: log.With("handler", "SearchHandler"), search: search}
}

// POST /api/search
// body: { "query": "...", "search_type": "semantic|keyword", "language": "...", "limit": 10 }
func (h *SearchHandler) Search(c *gin.Context) {
	var req struct {
		Query      string `json:"query"`
		SearchType string `json:"search_type"`
		Language   string `json:"language"`
		Limit      *int   `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondFailure(c, "Search", bindError(err))
		return
	}
	limit := services.DefaultSearchLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	res, err := h.search.Search(c.Request.Context(), services.SearchInput{
		Query:      req.Query,
		SearchType: req.SearchType,
		Language:   req.Language,
		Limit:      limit,
	})
	if err != nil {
		h.log.Error("Search error", "error", err)
		response.RespondFailure(c, "Search", err)
		return
	}
	response.RespondOK(c, res)
}
