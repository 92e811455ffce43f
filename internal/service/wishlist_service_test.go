package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelbywalsh/wishlist-backend/internal/domain"
	"github.com/shelbywalsh/wishlist-backend/internal/testutil"
	"github.com/shelbywalsh/wishlist-backend/internal/websocket"
)

// capturePublisher records published events for assertions
type capturePublisher struct {
	mu     sync.Mutex
	events []websocket.Event
}

func (p *capturePublisher) Publish(event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) Events() []websocket.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	copied := make([]websocket.Event, len(p.events))
	copy(copied, p.events)
	return copied
}

func validPayload(name, user string) map[string]any {
	return map[string]any{
		"name":    name,
		"user":    user,
		"entries": []any{map[string]any{"id": float64(0), "name": "bike"}},
	}
}

func TestCreate_Success(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	events := &capturePublisher{}
	svc := NewWishlistService(repo, events)

	created, err := svc.Create(context.Background(), validPayload("demo1", "alice"))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "demo1", created.Name)
	assert.Equal(t, "alice", created.User)
	require.Len(t, created.Entries, 1)

	published := events.Events()
	require.Len(t, published, 1)
	assert.Equal(t, "wishlist.created", published[0].Type)
}

func TestCreate_IgnoresClientSuppliedID(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	svc := NewWishlistService(repo, nil)

	payload := validPayload("demo1", "alice")
	payload["id"] = "spoofed"

	created, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.NotEqual(t, "spoofed", created.ID)
}

func TestCreate_ValidationFailures(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	events := &capturePublisher{}
	svc := NewWishlistService(repo, events)
	ctx := context.Background()

	tests := []struct {
		name    string
		payload any
	}{
		{"missing name", map[string]any{"user": "alice", "entries": []any{}}},
		{"missing user", map[string]any{"name": "demo1", "entries": []any{}}},
		{"missing entries", map[string]any{"name": "demo1", "user": "alice"}},
		{"malformed payload", "not an object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.payload)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}

	t.Run("blank name", func(t *testing.T) {
		_, err := svc.Create(ctx, map[string]any{"name": "   ", "user": "alice", "entries": []any{}})
		require.ErrorIs(t, err, domain.ErrNameRequired)
	})

	// Nothing was stored or published
	all, _ := repo.GetAll(ctx)
	assert.Empty(t, all)
	assert.Empty(t, events.Events())
}

func TestCreate_RepoFailureDoesNotPublish(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	repo.CreateFn = func(wishlist *domain.Wishlist) (*domain.Wishlist, error) {
		return nil, errors.New("backend unavailable")
	}
	events := &capturePublisher{}
	svc := NewWishlistService(repo, events)

	_, err := svc.Create(context.Background(), validPayload("demo1", "alice"))
	require.Error(t, err)
	assert.Empty(t, events.Events())
}

func TestUpdate_Success(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	repo.AddWishlist(&domain.Wishlist{Name: "demo1", User: "alice", Entries: []domain.Entry{}})
	events := &capturePublisher{}
	svc := NewWishlistService(repo, events)

	updated, err := svc.Update(context.Background(), "1", validPayload("renamed", "alice"))
	require.NoError(t, err)

	assert.Equal(t, "1", updated.ID)
	assert.Equal(t, "renamed", updated.Name)

	published := events.Events()
	require.Len(t, published, 1)
	assert.Equal(t, "wishlist.updated", published[0].Type)
}

func TestUpdate_MissingWishlist(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	events := &capturePublisher{}
	svc := NewWishlistService(repo, events)

	_, err := svc.Update(context.Background(), "99", validPayload("demo1", "alice"))
	require.ErrorIs(t, err, domain.ErrWishlistNotFound)
	assert.Empty(t, events.Events())
}

func TestUpdate_PathIdentityWins(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	repo.AddWishlist(&domain.Wishlist{Name: "demo1", User: "alice", Entries: []domain.Entry{}})
	svc := NewWishlistService(repo, nil)

	payload := validPayload("demo1", "alice")
	payload["id"] = "777"

	updated, err := svc.Update(context.Background(), "1", payload)
	require.NoError(t, err)
	assert.Equal(t, "1", updated.ID)
}

func TestUpdate_InvalidPayload(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	repo.AddWishlist(&domain.Wishlist{Name: "demo1", User: "alice", Entries: []domain.Entry{}})
	svc := NewWishlistService(repo, nil)

	_, err := svc.Update(context.Background(), "1", map[string]any{"user": "alice", "entries": []any{}})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
}

func TestGet(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	repo.AddWishlist(&domain.Wishlist{Name: "demo1", User: "alice", Entries: []domain.Entry{}})
	svc := NewWishlistService(repo, nil)
	ctx := context.Background()

	found, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "demo1", found.Name)

	_, err = svc.Get(ctx, "99")
	require.ErrorIs(t, err, domain.ErrWishlistNotFound)
}

func TestList_Filters(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	repo.AddWishlist(&domain.Wishlist{Name: "groceries", User: "alice", Entries: []domain.Entry{}})
	repo.AddWishlist(&domain.Wishlist{Name: "gifts", User: "bob", Entries: []domain.Entry{}})
	repo.AddWishlist(&domain.Wishlist{Name: "gifts", User: "alice", Entries: []domain.Entry{}})
	svc := NewWishlistService(repo, nil)
	ctx := context.Background()

	all, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byUser, err := svc.List(ctx, "alice", "")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byName, err := svc.List(ctx, "", "gifts")
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	// User filter wins when both are supplied
	both, err := svc.List(ctx, "bob", "groceries")
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "gifts", both[0].Name)
}

func TestDelete_PublishesPriorRecord(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	repo.AddWishlist(&domain.Wishlist{Name: "demo1", User: "alice", Entries: []domain.Entry{}})
	events := &capturePublisher{}
	svc := NewWishlistService(repo, events)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "1"))

	_, err := svc.Get(ctx, "1")
	require.ErrorIs(t, err, domain.ErrWishlistNotFound)

	published := events.Events()
	require.Len(t, published, 1)
	assert.Equal(t, "wishlist.deleted", published[0].Type)
	deleted, ok := published[0].Payload.(*domain.Wishlist)
	require.True(t, ok)
	assert.Equal(t, "demo1", deleted.Name)
}

func TestDelete_AbsentIsIdempotent(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	events := &capturePublisher{}
	svc := NewWishlistService(repo, events)

	require.NoError(t, svc.Delete(context.Background(), "99"))
	assert.Empty(t, events.Events())
}

func TestDeleteAllForUser(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	repo.AddWishlist(&domain.Wishlist{Name: "groceries", User: "alice", Entries: []domain.Entry{}})
	repo.AddWishlist(&domain.Wishlist{Name: "gifts", User: "bob", Entries: []domain.Entry{}})
	repo.AddWishlist(&domain.Wishlist{Name: "gifts", User: "alice", Entries: []domain.Entry{}})
	events := &capturePublisher{}
	svc := NewWishlistService(repo, events)
	ctx := context.Background()

	require.NoError(t, svc.DeleteAllForUser(ctx, "alice"))

	remaining, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "bob", remaining[0].User)

	// One deleted event per removed wishlist
	assert.Len(t, events.Events(), 2)
}

func TestDeleteAllForUser_NoWishlists(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	svc := NewWishlistService(repo, nil)

	require.NoError(t, svc.DeleteAllForUser(context.Background(), "nobody"))
}

func TestReset(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	repo.AddWishlist(&domain.Wishlist{Name: "demo1", User: "alice", Entries: []domain.Entry{}})
	events := &capturePublisher{}
	svc := NewWishlistService(repo, events)
	ctx := context.Background()

	require.NoError(t, svc.Reset(ctx))

	all, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, all)

	published := events.Events()
	require.Len(t, published, 1)
	assert.Equal(t, "wishlist.reset", published[0].Type)
}

func TestLoadDemoData(t *testing.T) {
	repo := testutil.NewMockWishlistRepository()
	svc := NewWishlistService(repo, nil)
	ctx := context.Background()

	require.NoError(t, svc.LoadDemoData(ctx))

	all, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "Wishlist demo 1", all[0].Name)
	assert.Equal(t, "demo user1", all[0].User)
	require.Len(t, all[0].Entries, 2)
	assert.Equal(t, "test11", all[0].Entries[0].Name)

	assert.Equal(t, "Wishlist demo 2", all[1].Name)
	assert.Equal(t, "demo user2", all[1].User)
	require.Len(t, all[1].Entries, 2)
}
