package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rafeeazmi/employee-portal/internal/app"
)

type RouterConfig struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	// RequestsPerMin of 0 disables rate limiting.
	RequestsPerMin int
	// Auth is mounted on /api when either is set.
	Tokens    []string
	JWTSecret string
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

func NewRouter(cfg RouterConfig, a *app.App) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(Recovery(logger))
	router.Use(RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	if cfg.RequestsPerMin > 0 {
		router.Use(NewRateLimiter(cfg.RequestsPerMin, logger).Middleware())
	}

	router.GET("/health", a.HealthHandler)
	// OAuth2 callback (must be outside auth)
	router.GET("/oauth2callback", a.GoogleOAuth2CallbackHandler)

	api := router.Group("/api")
	if len(cfg.Tokens) > 0 || cfg.JWTSecret != "" {
		api.Use(app.AuthMiddleware(cfg.Tokens, cfg.JWTSecret))
	}
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", a.ListRoomsHandler)
			rooms.GET("/:id", a.GetRoomHandler)
			rooms.GET("/:id/bookings", a.ListRoomBookingsHandler)
			rooms.GET("/:id/availability", a.RoomAvailabilityHandler)
		}

		api.GET("/bookings", a.ListBookingsHandler)
		api.POST("/bookings", a.CreateBookingHandler)

		employees := api.Group("/employees")
		{
			employees.GET("", a.ListEmployeesHandler)
			employees.GET("/:id", a.GetEmployeeHandler)
		}

		api.GET("/stats", a.StatsHandler)
		api.GET("/calendar/auth", a.GoogleAuthHandler)
	}

	return router
}
