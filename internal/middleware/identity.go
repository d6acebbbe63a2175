// internal/middleware/identity.go
package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vapeshop/vapeshop-backend/internal/utils"
)

const userIDHeader = "X-User-ID"

// Identity extracts the caller's messaging-platform user id from the
// X-User-ID header. There is no authentication layer in front of it: the
// id is trusted as-is and only gates admin surfaces via the allow-list.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(userIDHeader); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				c.Set("user_id", id)
			}
		}
		c.Next()
	}
}

// AdminRequired rejects callers whose id is not in the static admin
// allow-list.
func AdminRequired(adminIDs map[int64]struct{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.GetUserIDFromContext(c)
		if !ok {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		if _, admin := adminIDs[id]; !admin {
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
