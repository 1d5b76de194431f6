package main

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/reqroute/reqroute-api/internal/config"
	"github.com/reqroute/reqroute-api/internal/constants"
	"github.com/reqroute/reqroute-api/internal/database"
	"github.com/reqroute/reqroute-api/internal/handlers"
	"github.com/reqroute/reqroute-api/internal/logger"
	"github.com/reqroute/reqroute-api/internal/middleware"
	"github.com/reqroute/reqroute-api/internal/repository"
	"github.com/reqroute/reqroute-api/internal/services"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// Local development keeps settings in .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Fatal("Failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat, nil)
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create session store")
	}

	r := setupRouter(db, sessionStore)

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{
		"addr":          addr,
		"db_driver":     cfg.DBDriver,
		"session_store": cfg.SessionStore,
	}).Info("Server starting")
	if err := r.Run(addr); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		s, err := redisStore.NewStore(
			10,    // pool size
			"tcp", // network type
			cfg.RedisAddr(),
			"", // username
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = s
	default:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func setupRouter(db *gorm.DB, sessionStore sessions.Store) *gin.Engine {
	store := repository.NewStore(db)

	authService := services.NewAuthService(store.Users())
	academicService := services.NewAcademicService(store)
	scheduleService := services.NewScheduleService(store)
	meetingService := services.NewMeetingService(store)

	authHandler := handlers.NewAuthHandler(authService)
	academicHandler := handlers.NewAcademicHandler(academicService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	meetingHandler := handlers.NewMeetingHandler(meetingService)
	healthHandler := handlers.NewHealthHandler(db)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	r.GET("/health", healthHandler.Check)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())

		terms := protected.Group("/terms")
		{
			terms.POST("", academicHandler.CreateTerm)
			terms.GET("/:id", middleware.RequireIDParam(), academicHandler.GetTerm)
		}

		cases := protected.Group("/cases")
		{
			cases.POST("", academicHandler.CreateCase)
			cases.GET("/:id", middleware.RequireIDParam(), academicHandler.GetCase)
		}

		teams := protected.Group("/teams")
		{
			teams.POST("", academicHandler.CreateTeam)
			teams.GET("/:id", middleware.RequireIDParam(), academicHandler.GetTeam)

			team := teams.Group("/:id", middleware.RequireIDParam(), middleware.RequireTeam(store.Teams()))
			team.GET("/meetings", meetingHandler.ListTeamMeetings)
			team.GET("/schedule", scheduleHandler.GetActiveSchedule)
		}

		meetings := protected.Group("/meetings")
		{
			meetings.POST("", meetingHandler.CreateMeeting)
			meetings.GET("/:id", middleware.RequireIDParam(), meetingHandler.GetMeeting)
			meetings.PATCH("/:id", middleware.RequireIDParam(), meetingHandler.UpdateMeeting)
			meetings.DELETE("/:id", middleware.RequireIDParam(), meetingHandler.DeleteMeeting)
			meetings.GET("/:id/previous", middleware.RequireIDParam(), meetingHandler.GetPreviousMeeting)
		}

		schedules := protected.Group("/meeting-schedules")
		{
			schedules.POST("", scheduleHandler.CreateSchedule)
			schedules.GET("/:id", middleware.RequireIDParam(), scheduleHandler.GetSchedule)
			schedules.PATCH("/:id", middleware.RequireIDParam(), scheduleHandler.UpdateSchedule)
		}
	}

	return r
}
