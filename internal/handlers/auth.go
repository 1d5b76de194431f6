package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/reqroute/reqroute-api/internal/constants"
	"github.com/reqroute/reqroute-api/internal/dto"
	apierrors "github.com/reqroute/reqroute-api/internal/errors"
	"github.com/reqroute/reqroute-api/internal/logger"
	"github.com/reqroute/reqroute-api/internal/middleware"
	"github.com/reqroute/reqroute-api/internal/services"
)

// AuthHandler serves signup, login and the session endpoints.
type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a user. It does not log the user in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	user, err := h.authService.Signup(c, services.SignupInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	logger.WithContext(c).WithField("user_id", user.ID).Info("User signed up")
	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login checks the credentials and stores the user ID in the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	user, err := h.authService.Login(c, services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		respondInternalError(c, fmt.Errorf("failed to save session: %w", err))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		respondInternalError(c, fmt.Errorf("failed to clear session: %w", err))
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCurrentUser returns the user of the current session
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(c, userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Respond(c, http.StatusUnauthorized, apierrors.ErrCodeInvalidCredentials, "", nil)
	case errors.Is(err, services.ErrUserNotFound):
		// The session outlived its user.
		apierrors.Unauthorized(c, "")
	default:
		respondInternalError(c, err)
	}
}
