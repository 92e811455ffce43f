// Package memory provides the in-memory wishlist store. Records live in an
// insertion-ordered slice and identities come from a monotonic counter that
// is never reused within a process lifetime.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/shelbywalsh/wishlist-backend/internal/domain"
)

// WishlistRepository implements domain.WishlistRepository in process memory.
// The mutex guards both the counter and the slice; Go offers no benign-race
// container operations, so every mutation takes the lock.
type WishlistRepository struct {
	mu     sync.Mutex
	lists  []*domain.Wishlist
	nextID int
}

// NewWishlistRepository creates an empty in-memory store.
func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{}
}

// Create assigns the next identity and inserts a copy of the wishlist.
func (r *WishlistRepository) Create(_ context.Context, wishlist *domain.Wishlist) (*domain.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := wishlist.Clone()
	stored.ID = strconv.Itoa(r.nextID)
	r.lists = append(r.lists, stored)
	return stored.Clone(), nil
}

// Update replaces the record matching the wishlist's identity in place.
// No record matching is a silent no-op.
func (r *WishlistRepository) Update(_ context.Context, wishlist *domain.Wishlist) (*domain.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, stored := range r.lists {
		if stored.ID == wishlist.ID {
			r.lists[i] = wishlist.Clone()
			break
		}
	}
	return wishlist.Clone(), nil
}

// GetByID retrieves a wishlist by identity.
func (r *WishlistRepository) GetByID(_ context.Context, id string) (*domain.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.lists {
		if stored.ID == id {
			return stored.Clone(), nil
		}
	}
	return nil, domain.ErrWishlistNotFound
}

// GetByUser retrieves all wishlists owned by the user, in insertion order.
func (r *WishlistRepository) GetByUser(_ context.Context, user string) ([]*domain.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Wishlist
	for _, stored := range r.lists {
		if stored.User == user {
			result = append(result, stored.Clone())
		}
	}
	return result, nil
}

// GetByName retrieves all wishlists with the given name, in insertion order.
func (r *WishlistRepository) GetByName(_ context.Context, name string) ([]*domain.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Wishlist
	for _, stored := range r.lists {
		if stored.Name == name {
			result = append(result, stored.Clone())
		}
	}
	return result, nil
}

// GetAll retrieves every stored wishlist in insertion order.
func (r *WishlistRepository) GetAll(_ context.Context) ([]*domain.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Wishlist, 0, len(r.lists))
	for _, stored := range r.lists {
		result = append(result, stored.Clone())
	}
	return result, nil
}

// Delete removes the record with the given identity. Absent ids are ignored;
// the counter is never decremented, so identities are not reused.
func (r *WishlistRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, stored := range r.lists {
		if stored.ID == id {
			r.lists = append(r.lists[:i], r.lists[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteAll empties the store and restarts the identity sequence, as if the
// store were freshly initialized.
func (r *WishlistRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lists = nil
	r.nextID = 0
	return nil
}
