package handler

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/shelbywalsh/wishlist-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, limiter *middleware.RateLimiter, wishlistHandler *WishlistHandler, wsHandler *WebSocketHandler) {
	e.GET("/", Index)
	e.GET("/healthcheck", Healthcheck)

	// API documentation
	e.GET("/apidocs/*", echoSwagger.WrapHandler)

	// Event stream
	e.GET("/ws", wsHandler.HandleWS)

	requireJSON := middleware.RequireJSON()
	rateLimit := middleware.RateLimitMiddleware(limiter)

	wishlists := e.Group("/wishlists")
	wishlists.GET("", wishlistHandler.ListWishlists)
	wishlists.POST("", wishlistHandler.CreateWishlist, rateLimit, requireJSON)
	wishlists.POST("/demo", wishlistHandler.LoadDemoData, rateLimit)
	// Static routes take precedence over :id in echo's router
	wishlists.DELETE("/reset", wishlistHandler.ResetWishlists, rateLimit)
	wishlists.GET("/:id", wishlistHandler.GetWishlist)
	wishlists.PUT("/:id", wishlistHandler.UpdateWishlist, rateLimit, requireJSON)
	wishlists.DELETE("/:id", wishlistHandler.DeleteWishlist, rateLimit)
	// Echo requires one param name per segment position, so the owner
	// travels in :id here
	wishlists.DELETE("/:id/delete_all", wishlistHandler.DeleteAllForUser, rateLimit)
}
