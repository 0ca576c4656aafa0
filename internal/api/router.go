package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/seedx/support-backend/internal/api/handler"
	"github.com/seedx/support-backend/internal/api/middleware"
	"github.com/seedx/support-backend/internal/auth"
	"github.com/seedx/support-backend/internal/core/domain"
	"github.com/seedx/support-backend/internal/core/ports"
	"github.com/seedx/support-backend/internal/core/service"
	"github.com/seedx/support-backend/internal/infrastructure/config"
	mongodb "github.com/seedx/support-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/seedx/support-backend/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all services constructed once and
// passed by reference — no ambient lookups. transcripts may be nil, in
// which case completed AI replies are not persisted.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, aiClient ports.AIClient, transcripts ports.TranscriptRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("support"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	ticketRepo := mongodb.NewTicketRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	userCache := redisdb.NewUserCache(rdb, log)

	codec := auth.NewTokenCodec(cfg.JWTSecret, time.Duration(cfg.AccessTokenExpireMinutes)*time.Minute)
	authService := service.NewAuthService(userRepo, userCache, codec, log)
	ticketService := service.NewTicketService(ticketRepo, log)
	messageService := service.NewMessageService(ticketRepo, messageRepo)
	aiService := service.NewAIService(ticketRepo, messageRepo, aiClient, transcripts, log)

	authHandler := handler.NewAuthHandler(authService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	messageHandler := handler.NewMessageHandler(messageService)
	aiHandler := handler.NewAIHandler(aiService)
	adminHandler := handler.NewAdminHandler(authService)

	// Authentication gate: everything below except the open-path
	// allow-list requires a bearer token.
	e.Use(middleware.Auth(authService, log))

	// --- Open routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/docs/*", echoswagger.WrapHandler)
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Protected routes ---
	e.GET("/tickets", ticketHandler.List)
	e.POST("/tickets", ticketHandler.Create)
	e.GET("/tickets/:ticket_id", ticketHandler.Get)
	e.GET("/tickets/:ticket_id/messages", messageHandler.List)
	e.POST("/tickets/:ticket_id/messages", messageHandler.Create)
	e.GET("/tickets/:ticket_id/ai-response", aiHandler.Stream)

	e.GET("/admin/users", adminHandler.ListUsers, middleware.RequireRole(domain.RoleAdmin))

	return e
}
