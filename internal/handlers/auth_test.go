package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/reqroute/reqroute-api/internal/constants"
	"github.com/reqroute/reqroute-api/internal/dto"
	apierrors "github.com/reqroute/reqroute-api/internal/errors"
	"github.com/reqroute/reqroute-api/internal/middleware"
	"github.com/reqroute/reqroute-api/internal/repository"
	"github.com/reqroute/reqroute-api/internal/services"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	authService *services.AuthService
	router      *gin.Engine
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	db := openTestDB(suite.T())
	suite.authService = services.NewAuthService(repository.NewUserRepository(db))
	handler := NewAuthHandler(suite.authService)

	suite.router = gin.New()
	suite.router.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	auth := suite.router.Group("/api/v1/auth")
	auth.POST("/signup", handler.Signup)
	auth.POST("/login", handler.Login)
	auth.POST("/logout", handler.Logout)
	auth.GET("/me", middleware.RequireAuth(), handler.GetCurrentUser)
}

func (suite *AuthHandlerTestSuite) signup(username string) {
	_, err := suite.authService.Signup(context.Background(), services.SignupInput{
		Username: username,
		Password: "supersecret",
	})
	suite.Require().NoError(err)
}

func (suite *AuthHandlerTestSuite) TestSignup() {
	w := performJSON(suite.router, http.MethodPost, "/api/v1/auth/signup", `{"username":"newuser","password":"supersecret"}`)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var response dto.UserDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("newuser", response.Username)
	suite.NotZero(response.ID)
}

func (suite *AuthHandlerTestSuite) TestSignup_Rejects() {
	suite.signup("taken")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"short password", `{"username":"fresh","password":"short"}`, http.StatusBadRequest},
		{"short username", `{"username":"ab","password":"supersecret"}`, http.StatusBadRequest},
		{"duplicate username", `{"username":"taken","password":"supersecret"}`, http.StatusConflict},
		{"missing fields", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := performJSON(suite.router, http.MethodPost, "/api/v1/auth/signup", tt.body)
			suite.Equal(tt.want, w.Code, w.Body.String())
		})
	}
}

func (suite *AuthHandlerTestSuite) TestLogin_SessionRoundTrip() {
	suite.signup("existing")

	w := performJSON(suite.router, http.MethodPost, "/api/v1/auth/login", `{"username":"existing","password":"supersecret"}`)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies, "expected session cookie to be set")

	req := newRequest(http.MethodGet, "/api/v1/auth/me")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = serve(suite.router, req)
	suite.Require().Equal(http.StatusOK, w.Code)

	var me dto.UserDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &me))
	suite.Equal("existing", me.Username)
}

func (suite *AuthHandlerTestSuite) TestLogin_WrongPassword() {
	suite.signup("existing")

	w := performJSON(suite.router, http.MethodPost, "/api/v1/auth/login", `{"username":"existing","password":"wrong-password"}`)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Empty(w.Result().Cookies())

	var body apierrors.APIError
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(apierrors.ErrCodeInvalidCredentials, body.Code)
}

func (suite *AuthHandlerTestSuite) TestMe_RequiresSession() {
	w := performJSON(suite.router, http.MethodGet, "/api/v1/auth/me", "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogout_ExpiresCookie() {
	w := performJSON(suite.router, http.MethodPost, "/api/v1/auth/logout", "")
	suite.Require().Equal(http.StatusNoContent, w.Code)

	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)
	suite.Equal(constants.SessionCookieName, cookies[0].Name)
	suite.Less(cookies[0].MaxAge, 0)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
