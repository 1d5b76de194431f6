package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/reqroute/reqroute-api/internal/constants"
	apierrors "github.com/reqroute/reqroute-api/internal/errors"
	"github.com/reqroute/reqroute-api/internal/logger"
)

// RequireAuth admits requests whose session carries a user ID. The ID is put
// on the context as a uint64. A session holding anything else is cleared so
// the client stops replaying it.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(constants.ContextKeyUserID)
		if raw == nil {
			apierrors.Unauthorized(c, "")
			return
		}

		userID, ok := asUserID(raw)
		if !ok {
			logger.WithContext(c).WithField("session_value", raw).Warn("Discarding session with invalid user id")
			session.Delete(constants.ContextKeyUserID)
			if err := session.Save(); err != nil {
				logger.WithContext(c).WithError(err).Error("Failed to clear session")
			}
			apierrors.Unauthorized(c, "")
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID returns the user ID RequireAuth put on the context.
func GetUserID(c *gin.Context) (uint64, bool) {
	raw, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return asUserID(raw)
}

// asUserID accepts the integer kinds a session codec may hand back. Zero and
// negative values are not user IDs.
func asUserID(raw interface{}) (uint64, bool) {
	var id uint64
	switch v := raw.(type) {
	case uint64:
		id = v
	case uint:
		id = uint64(v)
	case int64:
		if v < 0 {
			return 0, false
		}
		id = uint64(v)
	case int:
		if v < 0 {
			return 0, false
		}
		id = uint64(v)
	default:
		return 0, false
	}
	return id, id != 0
}
