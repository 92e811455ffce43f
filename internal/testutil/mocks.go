package testutil

import (
	"context"
	"strconv"

	"github.com/shelbywalsh/wishlist-backend/internal/domain"
)

// MockWishlistRepository is a mock implementation of domain.WishlistRepository.
// It mirrors the in-memory backend's behavior and allows individual
// operations to be overridden for failure-path tests.
type MockWishlistRepository struct {
	Wishlists []*domain.Wishlist
	NextID    int

	CreateFn  func(wishlist *domain.Wishlist) (*domain.Wishlist, error)
	UpdateFn  func(wishlist *domain.Wishlist) (*domain.Wishlist, error)
	DeleteFn  func(id string) error
	GetByIDFn func(id string) (*domain.Wishlist, error)
}

// NewMockWishlistRepository creates a new MockWishlistRepository
func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{}
}

// AddWishlist adds a wishlist to the mock repository (helper for tests)
func (m *MockWishlistRepository) AddWishlist(wishlist *domain.Wishlist) {
	if wishlist.ID == "" {
		m.NextID++
		wishlist.ID = strconv.Itoa(m.NextID)
	}
	m.Wishlists = append(m.Wishlists, wishlist)
}

// Create assigns the next identity and inserts the wishlist
func (m *MockWishlistRepository) Create(_ context.Context, wishlist *domain.Wishlist) (*domain.Wishlist, error) {
	if m.CreateFn != nil {
		return m.CreateFn(wishlist)
	}
	m.NextID++
	stored := wishlist.Clone()
	stored.ID = strconv.Itoa(m.NextID)
	m.Wishlists = append(m.Wishlists, stored)
	return stored.Clone(), nil
}

// Update replaces the matching record in place; missing records are a no-op
func (m *MockWishlistRepository) Update(_ context.Context, wishlist *domain.Wishlist) (*domain.Wishlist, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(wishlist)
	}
	for i, stored := range m.Wishlists {
		if stored.ID == wishlist.ID {
			m.Wishlists[i] = wishlist.Clone()
			break
		}
	}
	return wishlist.Clone(), nil
}

// GetByID retrieves a wishlist by identity
func (m *MockWishlistRepository) GetByID(_ context.Context, id string) (*domain.Wishlist, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(id)
	}
	for _, stored := range m.Wishlists {
		if stored.ID == id {
			return stored.Clone(), nil
		}
	}
	return nil, domain.ErrWishlistNotFound
}

// GetByUser retrieves all wishlists owned by the user
func (m *MockWishlistRepository) GetByUser(_ context.Context, user string) ([]*domain.Wishlist, error) {
	var result []*domain.Wishlist
	for _, stored := range m.Wishlists {
		if stored.User == user {
			result = append(result, stored.Clone())
		}
	}
	return result, nil
}

// GetByName retrieves all wishlists with the given name
func (m *MockWishlistRepository) GetByName(_ context.Context, name string) ([]*domain.Wishlist, error) {
	var result []*domain.Wishlist
	for _, stored := range m.Wishlists {
		if stored.Name == name {
			result = append(result, stored.Clone())
		}
	}
	return result, nil
}

// GetAll retrieves every stored wishlist
func (m *MockWishlistRepository) GetAll(_ context.Context) ([]*domain.Wishlist, error) {
	result := make([]*domain.Wishlist, 0, len(m.Wishlists))
	for _, stored := range m.Wishlists {
		result = append(result, stored.Clone())
	}
	return result, nil
}

// Delete removes the matching record; absent ids are ignored
func (m *MockWishlistRepository) Delete(_ context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	for i, stored := range m.Wishlists {
		if stored.ID == id {
			m.Wishlists = append(m.Wishlists[:i], m.Wishlists[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteAll empties the store and restarts the identity sequence
func (m *MockWishlistRepository) DeleteAll(_ context.Context) error {
	m.Wishlists = nil
	m.NextID = 0
	return nil
}
