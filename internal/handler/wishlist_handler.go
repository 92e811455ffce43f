package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shelbywalsh/wishlist-backend/internal/domain"
	"github.com/shelbywalsh/wishlist-backend/internal/service"
)

// WishlistHandler handles wishlist-related HTTP requests
type WishlistHandler struct {
	wishlistService *service.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// WishlistResponse represents a wishlist in API responses
type WishlistResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	User    string          `json:"user"`
	Entries []EntryResponse `json:"entries"`
}

// EntryResponse represents a single wishlist entry in API responses
type EntryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ListWishlists handles GET /wishlists
// @Summary List wishlists
// @Description Retrieves all wishlists, optionally filtered by owner or name
// @Tags wishlists
// @Produce json
// @Param wishlist_user query string false "Filter by owner"
// @Param wishlist_name query string false "Filter by wishlist name"
// @Success 200 {array} WishlistResponse
// @Failure 500 {object} ProblemDetails
// @Router /wishlists [get]
func (h *WishlistHandler) ListWishlists(c echo.Context) error {
	user := c.QueryParam("wishlist_user")
	name := c.QueryParam("wishlist_name")

	wishlists, err := h.wishlistService.List(c.Request().Context(), user, name)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list wishlists")
		return NewInternalError(c, "Failed to list wishlists")
	}

	log.Info().Int("count", len(wishlists)).Msg("Wishlists returned")

	response := make([]WishlistResponse, len(wishlists))
	for i, wishlist := range wishlists {
		response[i] = toWishlistResponse(wishlist)
	}
	return c.JSON(http.StatusOK, response)
}

// GetWishlist handles GET /wishlists/:id
// @Summary Get a wishlist
// @Description Retrieves a single wishlist by its id
// @Tags wishlists
// @Produce json
// @Param id path string true "Wishlist id"
// @Success 200 {object} WishlistResponse
// @Failure 404 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /wishlists/{id} [get]
func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	id := c.Param("id")

	wishlist, err := h.wishlistService.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrWishlistNotFound) {
			return NewNotFoundError(c, "Wishlist not found")
		}
		log.Error().Err(err).Str("wishlist_id", id).Msg("Failed to get wishlist")
		return NewInternalError(c, "Failed to get wishlist")
	}

	return c.JSON(http.StatusOK, toWishlistResponse(wishlist))
}

// CreateWishlist handles POST /wishlists
// @Summary Create a wishlist
// @Description Creates a wishlist from the posted body; the id is server-assigned
// @Tags wishlists
// @Accept json
// @Produce json
// @Success 201 {object} WishlistResponse
// @Header 201 {string} Location "URL of the created wishlist"
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /wishlists [post]
func (h *WishlistHandler) CreateWishlist(c echo.Context) error {
	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return NewValidationError(c, "Body of request contained bad or no data", nil)
	}

	wishlist, err := h.wishlistService.Create(c.Request().Context(), payload)
	if err != nil {
		if resp := validationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Msg("Failed to create wishlist")
		return NewInternalError(c, "Failed to create wishlist")
	}

	log.Info().Str("wishlist_id", wishlist.ID).Str("user", wishlist.User).Msg("Wishlist created")

	c.Response().Header().Set(echo.HeaderLocation, "/wishlists/"+wishlist.ID)
	return c.JSON(http.StatusCreated, toWishlistResponse(wishlist))
}

// UpdateWishlist handles PUT /wishlists/:id
// @Summary Update a wishlist
// @Description Replaces the wishlist stored under id with the posted body
// @Tags wishlists
// @Accept json
// @Produce json
// @Param id path string true "Wishlist id"
// @Success 200 {object} WishlistResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /wishlists/{id} [put]
func (h *WishlistHandler) UpdateWishlist(c echo.Context) error {
	id := c.Param("id")

	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return NewValidationError(c, "Body of request contained bad or no data", nil)
	}

	wishlist, err := h.wishlistService.Update(c.Request().Context(), id, payload)
	if err != nil {
		if errors.Is(err, domain.ErrWishlistNotFound) {
			return NewNotFoundError(c, "Wishlist not found")
		}
		if resp := validationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Str("wishlist_id", id).Msg("Failed to update wishlist")
		return NewInternalError(c, "Failed to update wishlist")
	}

	log.Info().Str("wishlist_id", wishlist.ID).Msg("Wishlist updated")
	return c.JSON(http.StatusOK, toWishlistResponse(wishlist))
}

// DeleteWishlist handles DELETE /wishlists/:id
// @Summary Delete a wishlist
// @Description Removes a wishlist; deleting an absent id still returns 204
// @Tags wishlists
// @Param id path string true "Wishlist id"
// @Success 204
// @Failure 500 {object} ProblemDetails
// @Router /wishlists/{id} [delete]
func (h *WishlistHandler) DeleteWishlist(c echo.Context) error {
	id := c.Param("id")

	if err := h.wishlistService.Delete(c.Request().Context(), id); err != nil {
		log.Error().Err(err).Str("wishlist_id", id).Msg("Failed to delete wishlist")
		return NewInternalError(c, "Failed to delete wishlist")
	}

	log.Info().Str("wishlist_id", id).Msg("Wishlist deleted")
	return c.NoContent(http.StatusNoContent)
}

// DeleteAllForUser handles DELETE /wishlists/:user/delete_all
// @Summary Delete all wishlists of a user
// @Tags wishlists
// @Param user path string true "Wishlist owner"
// @Success 204
// @Failure 500 {object} ProblemDetails
// @Router /wishlists/{user}/delete_all [delete]
func (h *WishlistHandler) DeleteAllForUser(c echo.Context) error {
	user := c.Param("id") // route param position carries the owner name

	if err := h.wishlistService.DeleteAllForUser(c.Request().Context(), user); err != nil {
		log.Error().Err(err).Str("user", user).Msg("Failed to delete user wishlists")
		return NewInternalError(c, "Failed to delete user wishlists")
	}

	log.Info().Str("user", user).Msg("All wishlists of user deleted")
	return c.NoContent(http.StatusNoContent)
}

// ResetWishlists handles DELETE /wishlists/reset (test utility)
// @Summary Remove all wishlists
// @Description Clears the entire collection; intended for test fixtures
// @Tags wishlists
// @Success 204
// @Failure 500 {object} ProblemDetails
// @Router /wishlists/reset [delete]
func (h *WishlistHandler) ResetWishlists(c echo.Context) error {
	if err := h.wishlistService.Reset(c.Request().Context()); err != nil {
		log.Error().Err(err).Msg("Failed to reset wishlists")
		return NewInternalError(c, "Failed to reset wishlists")
	}

	log.Info().Msg("Wishlist collection reset")
	return c.NoContent(http.StatusNoContent)
}

// LoadDemoData handles POST /wishlists/demo
// @Summary Load demo wishlists
// @Tags wishlists
// @Produce json
// @Success 201 {object} map[string]string
// @Failure 500 {object} ProblemDetails
// @Router /wishlists/demo [post]
func (h *WishlistHandler) LoadDemoData(c echo.Context) error {
	if err := h.wishlistService.LoadDemoData(c.Request().Context()); err != nil {
		log.Error().Err(err).Msg("Failed to load demo wishlists")
		return NewInternalError(c, "Failed to load demo wishlists")
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "Created demo wishlists"})
}

// validationResponse maps validation failures to a 400 response, or returns
// nil when err is not a validation condition.
func validationResponse(c echo.Context, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		var details []ValidationError
		if vErr.Field != "" {
			details = []ValidationError{{Field: vErr.Field, Message: "Field is required"}}
		}
		return NewValidationError(c, vErr.Error(), details)
	}
	if errors.Is(err, domain.ErrNameRequired) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	}
	if errors.Is(err, domain.ErrUserRequired) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "user", Message: "User is required"},
		})
	}
	return nil
}

// Helper function to convert domain.Wishlist to WishlistResponse
func toWishlistResponse(wishlist *domain.Wishlist) WishlistResponse {
	entries := make([]EntryResponse, len(wishlist.Entries))
	for i, e := range wishlist.Entries {
		entries[i] = EntryResponse{ID: e.ID, Name: e.Name}
	}
	return WishlistResponse{
		ID:      wishlist.ID,
		Name:    wishlist.Name,
		User:    wishlist.User,
		Entries: entries,
	}
}
