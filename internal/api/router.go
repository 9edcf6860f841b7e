package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dextasynergyservices/myweddingpage/internal/api/handler"
	"github.com/dextasynergyservices/myweddingpage/internal/api/middleware"
	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
	"github.com/dextasynergyservices/myweddingpage/internal/core/ports"
	"github.com/dextasynergyservices/myweddingpage/internal/core/service"
	mongostore "github.com/dextasynergyservices/myweddingpage/internal/infrastructure/db/mongo"
	redisstore "github.com/dextasynergyservices/myweddingpage/internal/infrastructure/db/redis"
	"github.com/dextasynergyservices/myweddingpage/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	dispatcher ports.NotificationDispatcher,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("weddingpage"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	resetRepo := mongostore.NewResetTokenRepository(db)
	throttle := redisstore.NewResendThrottle(rdb, cfg.ResendWindow)

	verifier := service.NewVerificationService(
		userRepo, dispatcher, throttle,
		cfg.VerificationTTL, cfg.PublicBaseURL+"/auth/verify", log,
	)
	authService := service.NewAuthService(userRepo, verifier, cfg.JWTSecret, cfg.SessionTTL)
	resetService := service.NewPasswordResetService(
		userRepo, resetRepo, dispatcher,
		cfg.ResetTokenTTL, cfg.PublicBaseURL+"/reset-password", log,
	)

	authHandler := handler.NewAuthHandler(authService, verifier, resetService, cfg.SessionTTL, cfg.IsProduction())
	userHandler := handler.NewUserHandler(userRepo)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/verify", authHandler.Verify)
	e.GET("/auth/verify/:token", authHandler.VerifyLink)
	e.POST("/auth/resend", authHandler.Resend)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	// --- Session-scoped routes ---
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/me/profile", userHandler.Profile)

	admin := v1.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/users", userHandler.ListUsers)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
