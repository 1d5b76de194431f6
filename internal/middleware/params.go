package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reqroute/reqroute-api/internal/constants"
	apierrors "github.com/reqroute/reqroute-api/internal/errors"
)

// RequireIDParam parses the :id path parameter and stores it in the context.
// Non-numeric or zero IDs are rejected with 400.
func RequireIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid ID")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyResourceID, id)
		c.Next()
	}
}

// GetIDParam returns the ID stored by RequireIDParam
func GetIDParam(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(constants.ContextKeyResourceID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
