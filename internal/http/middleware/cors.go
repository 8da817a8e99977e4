package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured origins. An empty list or a "*" entry allows any
// origin, without credentials.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", headerRequestID, headerTraceID},
		ExposeHeaders: []string{headerRequestID, headerTraceID},
		MaxAge:        12 * time.Hour,
	}
	var explicit []string
	allowAll := len(origins) == 0
	for _, o := range origins {
		o = strings.TrimSpace(o)
		switch {
		case o == "*":
			allowAll = true
		case o != "":
			explicit = append(explicit, strings.TrimRight(o, "/"))
		}
	}
	if allowAll || len(explicit) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = explicit
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
