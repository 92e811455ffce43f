package domain

import (
	"context"
	"strings"
)

// Entry is a single product entry inside a wishlist. Entries have no
// independent persistence; they exist only embedded in their Wishlist.
type Entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Wishlist is a named, user-owned ordered collection of entries.
// ID is opaque and assigned by the store on first save; the zero value
// means the wishlist has not been persisted yet.
type Wishlist struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	User    string  `json:"user"`
	Entries []Entry `json:"entries"`
}

// Saved reports whether the store has assigned an identity.
func (w *Wishlist) Saved() bool {
	return w.ID != ""
}

// Validate checks the invariants required for persistence.
func (w *Wishlist) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(w.User) == "" {
		return ErrUserRequired
	}
	return nil
}

// Clone returns a deep copy so stored records never alias caller memory.
func (w *Wishlist) Clone() *Wishlist {
	dup := &Wishlist{
		ID:      w.ID,
		Name:    w.Name,
		User:    w.User,
		Entries: make([]Entry, len(w.Entries)),
	}
	copy(dup.Entries, w.Entries)
	return dup
}

// AddEntry appends an entry, assigning the next position-based entry id.
func (w *Wishlist) AddEntry(name string) {
	w.Entries = append(w.Entries, Entry{ID: len(w.Entries), Name: name})
}

// Serialize produces the external representation of the wishlist.
// The id field is null until the store has assigned an identity.
func (w *Wishlist) Serialize() map[string]any {
	entries := make([]map[string]any, len(w.Entries))
	for i, e := range w.Entries {
		entries[i] = map[string]any{"id": e.ID, "name": e.Name}
	}
	var id any
	if w.Saved() {
		id = w.ID
	}
	return map[string]any{
		"id":      id,
		"name":    w.Name,
		"user":    w.User,
		"entries": entries,
	}
}

// DeserializeWishlist converts an external key/value payload into a Wishlist.
// Required keys are name, user and entries; each entry requires id and name.
// Any client-supplied wishlist id is ignored, identity assignment belongs to
// the store. Failures are always a *ValidationError naming the missing field.
func DeserializeWishlist(payload any) (*Wishlist, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, NewMalformedPayloadError()
	}

	name, ok := obj["name"].(string)
	if !ok {
		return nil, NewMissingFieldError("name")
	}
	user, ok := obj["user"].(string)
	if !ok {
		return nil, NewMissingFieldError("user")
	}
	rawEntries, ok := obj["entries"].([]any)
	if !ok {
		return nil, NewMissingFieldError("entries")
	}

	entries := make([]Entry, 0, len(rawEntries))
	for _, raw := range rawEntries {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, NewMissingFieldError("entries")
		}
		id, ok := entryID(entry["id"])
		if !ok {
			return nil, NewMissingFieldError("id")
		}
		entryName, ok := entry["name"].(string)
		if !ok {
			return nil, NewMissingFieldError("name")
		}
		entries = append(entries, Entry{ID: id, Name: entryName})
	}

	return &Wishlist{Name: name, User: user, Entries: entries}, nil
}

// entryID accepts the numeric representations a decoded JSON payload or a
// directly constructed map can carry.
func entryID(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

// WishlistRepository is the store contract both backends satisfy. Absence is
// always reported as ErrWishlistNotFound or an empty result, never a panic;
// only transport failures cross this boundary as unexpected errors.
type WishlistRepository interface {
	// Create assigns a fresh identity and inserts the record. The wishlist
	// must not be treated as saved until Create returns without error.
	Create(ctx context.Context, wishlist *Wishlist) (*Wishlist, error)
	// Update replaces the record matching the wishlist's identity in place.
	// A missing record is a silent no-op at the store level; callers that
	// need to surface absence check existence first.
	Update(ctx context.Context, wishlist *Wishlist) (*Wishlist, error)
	GetByID(ctx context.Context, id string) (*Wishlist, error)
	GetByUser(ctx context.Context, user string) ([]*Wishlist, error)
	GetByName(ctx context.Context, name string) ([]*Wishlist, error)
	GetAll(ctx context.Context) ([]*Wishlist, error)
	// Delete removes the record permanently. Deleting an absent id is not
	// an error.
	Delete(ctx context.Context, id string) error
	// DeleteAll empties the collection and resets identity-generation state.
	DeleteAll(ctx context.Context) error
}
