package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/parampara-backend/internal/http/response"
)

type VRHandler struct{}

func NewVRHandler() *VRHandler { return &VRHandler{} }

// GET /api/vr/preview/:document_id
// Placeholder; the id is echoed without lookup.
func (h *VRHandler) Preview(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"message":     "3D artifact preview coming soon!",
		"document_id": c.Param("document_id"),
		"features": []string{
			"Virtual manuscript viewing",
			"3D artifact reconstruction",
			"Immersive cultural experiences",
		},
		"status": "in_development",
	})
}
