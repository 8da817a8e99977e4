package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/parampara-backend/internal/http/response"
	"github.com/yungbote/parampara-backend/internal/services"
)

const welcomeMessage = "Welcome to ParamparaSmritiAI - Preserving India's Cultural Heritage"

type HealthHandler struct {
	health services.HealthService
}

func NewHealthHandler(health services.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// GET /api/
func (h *HealthHandler) Root(c *gin.Context) {
	response.RespondOK(c, gin.H{"message": welcomeMessage})
}

// GET /api/health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	response.RespondOK(c, h.health.Check(c.Request.Context()))
}
