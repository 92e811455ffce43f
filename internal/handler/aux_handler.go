package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse is the liveness probe payload
type HealthResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// IndexResponse describes the service at the root path
type IndexResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

// Healthcheck handles GET /healthcheck
// @Summary Liveness probe
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthcheck [get]
func Healthcheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: http.StatusOK, Message: "Healthy"})
}

// Index handles GET /
// @Summary Service index
// @Produce json
// @Success 200 {object} IndexResponse
// @Router / [get]
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, IndexResponse{
		Name:    "Wishlists REST API Service",
		Version: "1.0",
		URL:     "/wishlists",
	})
}
