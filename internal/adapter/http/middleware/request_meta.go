package middleware

import (
	"strings"

	"medrequest_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestMeta copies caller metadata into the request context for audit entries
// and echoes the correlation id back.
func RequestMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(HeaderRequestID, rid)

		ctx := usecase.WithRequestMeta(c.Request.Context(), usecase.RequestMeta{
			IPAddress:     c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
			CorrelationID: rid,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
