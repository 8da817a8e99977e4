package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/parampara-backend/internal/platform/apierr"
)

// ErrorBody is the only error shape the API returns.
type ErrorBody struct {
	Detail string `json:"detail"`
}

func RespondError(c *gin.Context, status int, detail string) {
	if detail == "" {
		detail = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorBody{Detail: detail})
}

// RespondFailure maps err to a status. Validation and not-found errors carry
// their own message; everything else reads "<feature> failed: <err>".
func RespondFailure(c *gin.Context, feature string, err error) {
	status := apierr.Status(err)
	if err == nil {
		RespondError(c, http.StatusInternalServerError, feature+" failed")
		return
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		RespondError(c, status, feature+" failed: "+err.Error())
		return
	}
	RespondError(c, status, err.Error())
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
