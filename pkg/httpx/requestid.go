package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Sardaar2003/fortigatex-sub001/pkg/ctxmeta"
)

// RequestIDMiddleware:
// - accepts X-Request-ID from the client or generates a UUID
// - stores the request id in the context
// - echoes it back in the X-Request-ID response header
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
