package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sardaar2003/fortigatex-sub001/pkg/ctxmeta"
)

// authRequired expects the caller identity resolved by the edge proxy
// in X-User-ID (and optionally X-User-Role). Requests without an
// identity are turned away before any handler runs.
func authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				envelope{Success: false, Message: "missing X-User-ID"})
			return
		}
		role := c.GetHeader("X-User-Role")

		ctx := ctxmeta.WithUser(c.Request.Context(), userID, role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
