package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prodmanage/catalog-api/internal/api/handler"
	"github.com/prodmanage/catalog-api/internal/api/middleware"
	"github.com/prodmanage/catalog-api/internal/core/auth"
	"github.com/prodmanage/catalog-api/internal/core/service"
	mongodb "github.com/prodmanage/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/prodmanage/catalog-api/internal/infrastructure/db/redis"
	"github.com/prodmanage/catalog-api/internal/pkg/config"
)

const tokenTTL = 24 * time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("catalog"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// --- Dependencies ---
	tokens := auth.NewTokenService(cfg.JWTSecret, tokenTTL)

	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, tokens, log)
	authHandler := handler.NewAuthHandler(authService)

	productRepo := mongodb.NewProductRepository(db)
	productCache := redisdb.NewProductCache(rdb)
	productService := service.NewProductService(productRepo, productCache, log)
	productHandler := handler.NewProductHandler(productService)

	authMiddleware := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Product routes (bearer token required) ---
	e.GET("/listproducts", productHandler.List, authMiddleware)
	e.POST("/addproduct", productHandler.Create, authMiddleware)
	e.GET("/getproduct/:id", productHandler.Get, authMiddleware)
	e.PUT("/editproduct/:id", productHandler.Edit, authMiddleware)
	e.DELETE("/deleteproduct/:id", productHandler.Delete, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	// /health reports dependency state (503 when degraded); /health/live is
	// the cheap process-alive check.
	e.GET("/health", readinessHandler.Readiness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/health/live", healthHandler.Liveness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/docs/*", echoSwagger.WrapHandler)

	return e
}
