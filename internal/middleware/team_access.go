package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/reqroute/reqroute-api/internal/constants"
	apierrors "github.com/reqroute/reqroute-api/internal/errors"
	"github.com/reqroute/reqroute-api/internal/logger"
	"github.com/reqroute/reqroute-api/internal/models"
	"github.com/reqroute/reqroute-api/internal/repository"
	"gorm.io/gorm"
)

// RequireTeam loads the team named by the :id parameter. It must run after
// RequireIDParam. Unknown teams are answered with 404.
func RequireTeam(teams repository.TeamRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID, ok := GetIDParam(c)
		if !ok {
			apierrors.BadRequest(c, "Invalid team ID")
			c.Abort()
			return
		}

		team, err := teams.FindByID(c, teamID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Team not found")
			} else {
				logger.WithContext(c).WithError(err).Error("Failed to load team")
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTeam, team)
		c.Next()
	}
}

// GetTeam returns the team stored by RequireTeam
func GetTeam(c *gin.Context) (*models.Team, bool) {
	v, exists := c.Get(constants.ContextKeyTeam)
	if !exists {
		return nil, false
	}
	team, ok := v.(*models.Team)
	return team, ok
}
