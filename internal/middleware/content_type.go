package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// RequireJSON rejects body-carrying requests whose media type is not
// application/json with 415
func RequireJSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contentType := c.Request().Header.Get(echo.HeaderContentType)
			if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
				return next(c)
			}

			log.Error().
				Str("content_type", contentType).
				Str("path", c.Request().URL.Path).
				Msg("Invalid Content-Type")

			return c.JSON(http.StatusUnsupportedMediaType, map[string]interface{}{
				"type":   "https://wishlists.example.com/errors/unsupported-media-type",
				"title":  "Unsupported Media Type",
				"status": 415,
				"detail": "Content-Type must be application/json",
			})
		}
	}
}
