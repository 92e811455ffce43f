package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shelbywalsh/wishlist-backend/internal/domain"
	"github.com/shelbywalsh/wishlist-backend/internal/websocket"
)

// WishlistService handles wishlist business logic over either store backend.
type WishlistService struct {
	wishlistRepo domain.WishlistRepository
	events       websocket.EventPublisher
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(wishlistRepo domain.WishlistRepository, events websocket.EventPublisher) *WishlistService {
	if events == nil {
		events = &websocket.NoOpPublisher{}
	}
	return &WishlistService{wishlistRepo: wishlistRepo, events: events}
}

// Create deserializes and validates the payload, then persists a new
// wishlist. The store assigns the identity; any client-supplied id is
// ignored.
func (s *WishlistService) Create(ctx context.Context, payload any) (*domain.Wishlist, error) {
	wishlist, err := domain.DeserializeWishlist(payload)
	if err != nil {
		return nil, err
	}
	wishlist.Name = strings.TrimSpace(wishlist.Name)
	wishlist.User = strings.TrimSpace(wishlist.User)
	if err := wishlist.Validate(); err != nil {
		return nil, err
	}

	created, err := s.wishlistRepo.Create(ctx, wishlist)
	if err != nil {
		return nil, err
	}

	s.events.Publish(websocket.WishlistCreated(created))
	return created, nil
}

// Update replaces the wishlist stored under id with the payload's fields.
// The identity in the path wins; the record keeps its id.
func (s *WishlistService) Update(ctx context.Context, id string, payload any) (*domain.Wishlist, error) {
	// The store-level update silently no-ops on a missing record, so the
	// existence check here is what lets the boundary answer 404.
	if _, err := s.wishlistRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	wishlist, err := domain.DeserializeWishlist(payload)
	if err != nil {
		return nil, err
	}
	wishlist.Name = strings.TrimSpace(wishlist.Name)
	wishlist.User = strings.TrimSpace(wishlist.User)
	if err := wishlist.Validate(); err != nil {
		return nil, err
	}
	wishlist.ID = id

	updated, err := s.wishlistRepo.Update(ctx, wishlist)
	if err != nil {
		return nil, err
	}

	s.events.Publish(websocket.WishlistUpdated(updated))
	return updated, nil
}

// Get retrieves a wishlist by identity.
func (s *WishlistService) Get(ctx context.Context, id string) (*domain.Wishlist, error) {
	return s.wishlistRepo.GetByID(ctx, id)
}

// List retrieves wishlists, optionally filtered by user or by name. The user
// filter takes precedence when both are supplied.
func (s *WishlistService) List(ctx context.Context, user, name string) ([]*domain.Wishlist, error) {
	switch {
	case user != "":
		return s.wishlistRepo.GetByUser(ctx, user)
	case name != "":
		return s.wishlistRepo.GetByName(ctx, name)
	default:
		return s.wishlistRepo.GetAll(ctx)
	}
}

// Delete removes a wishlist permanently. Deleting an absent id is not an
// error; the operation is idempotent.
func (s *WishlistService) Delete(ctx context.Context, id string) error {
	existing, err := s.wishlistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrWishlistNotFound) {
			return nil
		}
		return err
	}

	if err := s.wishlistRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Publish(websocket.WishlistDeleted(existing))
	return nil
}

// DeleteAllForUser removes every wishlist owned by the user as a loop of
// independent single-record deletes. There is no atomicity across the batch;
// a failure partway through leaves a partially-deleted set.
func (s *WishlistService) DeleteAllForUser(ctx context.Context, user string) error {
	wishlists, err := s.wishlistRepo.GetByUser(ctx, user)
	if err != nil {
		return err
	}
	for _, wishlist := range wishlists {
		if err := s.Delete(ctx, wishlist.ID); err != nil {
			return err
		}
	}
	return nil
}

// Reset empties the entire collection and resets identity-generation state.
// Test tooling only, not part of normal application flow.
func (s *WishlistService) Reset(ctx context.Context) error {
	if err := s.wishlistRepo.DeleteAll(ctx); err != nil {
		return err
	}
	s.events.Publish(websocket.WishlistsReset())
	return nil
}

// LoadDemoData seeds a few wishlists for demos.
func (s *WishlistService) LoadDemoData(ctx context.Context) error {
	for _, seed := range []struct {
		name, user string
		entries    []string
	}{
		{"Wishlist demo 1", "demo user1", []string{"test11", "test12"}},
		{"Wishlist demo 2", "demo user2", []string{"test21", "test22"}},
	} {
		wishlist := &domain.Wishlist{Name: seed.name, User: seed.user}
		for _, entry := range seed.entries {
			wishlist.AddEntry(entry)
		}
		if _, err := s.wishlistRepo.Create(ctx, wishlist); err != nil {
			return err
		}
	}
	return nil
}
