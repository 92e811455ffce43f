package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/shelbywalsh/wishlist-backend/docs"
	"github.com/shelbywalsh/wishlist-backend/internal/config"
	"github.com/shelbywalsh/wishlist-backend/internal/domain"
	"github.com/shelbywalsh/wishlist-backend/internal/handler"
	"github.com/shelbywalsh/wishlist-backend/internal/middleware"
	"github.com/shelbywalsh/wishlist-backend/internal/repository/memory"
	mongorepo "github.com/shelbywalsh/wishlist-backend/internal/repository/mongo"
	"github.com/shelbywalsh/wishlist-backend/internal/service"
	"github.com/shelbywalsh/wishlist-backend/internal/websocket"
)

// @title Wishlist REST API Service
// @version 1.0
// @description This is a Wishlist store server.
// @BasePath /
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Select the store backend
	var wishlistRepo domain.WishlistRepository
	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, err := mongorepo.Connect(context.Background(), cfg.Mongo.URI())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to document store")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := mongorepo.Disconnect(ctx, client); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect from document store")
			}
		}()
		wishlistRepo = mongorepo.NewWishlistRepository(client, cfg.Mongo.Database)
	default:
		wishlistRepo = memory.NewWishlistRepository()
	}
	log.Info().Str("backend", cfg.StoreBackend).Msg("Store backend initialized")

	// Event hub for the live wishlist stream
	hub := websocket.NewHub()

	// Initialize services
	wishlistService := service.NewWishlistService(wishlistRepo, hub)

	// Initialize handlers
	wishlistHandler := handler.NewWishlistHandler(wishlistService)
	wsHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins)

	// Rate limiting for mutating routes
	limiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer limiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Register API routes
	handler.RegisterRoutes(e, limiter, wishlistHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
