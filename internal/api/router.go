package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mediscan/platform-api/docs"
	"github.com/mediscan/platform-api/internal/api/handler"
	"github.com/mediscan/platform-api/internal/api/middleware"
	"github.com/mediscan/platform-api/internal/auth"
	"github.com/mediscan/platform-api/internal/core/domain"
	"github.com/mediscan/platform-api/internal/core/ports"
	"github.com/mediscan/platform-api/internal/core/service"
	"github.com/mediscan/platform-api/internal/infrastructure/config"
	mongostore "github.com/mediscan/platform-api/internal/infrastructure/db/mongo"
	redisstore "github.com/mediscan/platform-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes
// registered. rdb may be nil, in which case login throttling is disabled.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("mediscan"))

	// --- Dependencies ---
	accountRepo := mongostore.NewAccountRepository(db)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var throttle ports.LoginThrottle
	if rdb != nil {
		throttle = redisstore.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
	}

	authService := service.NewAuthService(accountRepo, hasher, tokens, throttle)
	userService := service.NewUserService(accountRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.Auth.SetupKey, tokens.TTL(), cfg.Production())
	userHandler := handler.NewUserHandler(userService)
	authenticated := middleware.Auth(tokens)

	// --- Auth routes ---
	authGroup := e.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/register-superadmin", authHandler.RegisterSuperadmin)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, authenticated)
	authGroup.GET("/me", authHandler.Me, authenticated)
	authGroup.POST("/change-password", authHandler.ChangePassword, authenticated)

	// --- Account administration ---
	users := e.Group("/users", authenticated)
	users.GET("", userHandler.List, middleware.RequireRole(domain.RoleSuperadmin))
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, middleware.RequireRole(domain.RoleSuperadmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/docs/*", echoSwagger.WrapHandler)

	return e
}
