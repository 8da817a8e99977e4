package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/parampara-backend/internal/data/repos"
	"github.com/yungbote/parampara-backend/internal/platform/apierr"
)

// listLimit reads ?limit=, defaulting to the list cap.
func listLimit(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return repos.MaxListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.Validation("limit must be an integer (got %q)", raw)
	}
	return n, nil
}

func bindError(err error) error {
	return apierr.Validation("invalid request body: %v", err)
}
