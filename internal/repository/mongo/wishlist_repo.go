package mongo

import (
	"context"
	"errors"

	"github.com/shelbywalsh/wishlist-backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "wishlists"

// WishlistRepository implements domain.WishlistRepository against a document
// store using the official driver.
type WishlistRepository struct {
	coll  *mongo.Collection
	retry RetryPolicy
}

// NewWishlistRepository creates a repository bound to the named database.
func NewWishlistRepository(client *mongo.Client, database string) *WishlistRepository {
	return &WishlistRepository{
		coll:  client.Database(database).Collection(collectionName),
		retry: DefaultRetryPolicy(),
	}
}

// wishlistDoc is the stored document shape. The domain type stays free of
// driver tags.
type wishlistDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	User    string             `bson:"user"`
	Entries []entryDoc         `bson:"entries"`
}

type entryDoc struct {
	ID   int    `bson:"id"`
	Name string `bson:"name"`
}

// Create inserts the wishlist and returns a copy carrying the identity the
// backend assigned. On failure the caller's wishlist is untouched and still
// unsaved.
func (r *WishlistRepository) Create(ctx context.Context, wishlist *domain.Wishlist) (*domain.Wishlist, error) {
	doc := toDoc(wishlist)

	var assigned primitive.ObjectID
	err := r.retry.Do(ctx, "create", func(ctx context.Context) error {
		res, err := r.coll.InsertOne(ctx, doc)
		if err != nil {
			return err
		}
		assigned = res.InsertedID.(primitive.ObjectID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	stored := wishlist.Clone()
	stored.ID = assigned.Hex()
	return stored, nil
}

// Update replaces the document matching the wishlist's identity. A missing
// document is a silent no-op, matching the store contract.
func (r *WishlistRepository) Update(ctx context.Context, wishlist *domain.Wishlist) (*domain.Wishlist, error) {
	oid, err := primitive.ObjectIDFromHex(wishlist.ID)
	if err != nil {
		// An identity this store never issued cannot match a document.
		return wishlist.Clone(), nil
	}

	doc := toDoc(wishlist)
	doc.ID = oid
	err = r.retry.Do(ctx, "update", func(ctx context.Context) error {
		_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wishlist.Clone(), nil
}

// GetByID retrieves a wishlist by identity.
func (r *WishlistRepository) GetByID(ctx context.Context, id string) (*domain.Wishlist, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrWishlistNotFound
	}

	var doc wishlistDoc
	err = r.retry.Do(ctx, "get", func(ctx context.Context) error {
		return r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWishlistNotFound
		}
		return nil, err
	}
	return fromDoc(doc), nil
}

// GetByUser retrieves all wishlists owned by the user.
func (r *WishlistRepository) GetByUser(ctx context.Context, user string) ([]*domain.Wishlist, error) {
	return r.find(ctx, "get_by_user", bson.M{"user": user})
}

// GetByName retrieves all wishlists with the given name.
func (r *WishlistRepository) GetByName(ctx context.Context, name string) ([]*domain.Wishlist, error) {
	return r.find(ctx, "get_by_name", bson.M{"name": name})
}

// GetAll retrieves every stored wishlist.
func (r *WishlistRepository) GetAll(ctx context.Context) ([]*domain.Wishlist, error) {
	return r.find(ctx, "get_all", bson.M{})
}

// Delete removes the document with the given identity. Absent ids are
// ignored.
func (r *WishlistRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	return r.retry.Do(ctx, "delete", func(ctx context.Context) error {
		_, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
		return err
	})
}

// DeleteAll empties the entire collection. Identity generation belongs to
// the backend, so there is no counter to reset.
func (r *WishlistRepository) DeleteAll(ctx context.Context) error {
	return r.retry.Do(ctx, "delete_all", func(ctx context.Context) error {
		_, err := r.coll.DeleteMany(ctx, bson.M{})
		return err
	})
}

func (r *WishlistRepository) find(ctx context.Context, op string, filter bson.M) ([]*domain.Wishlist, error) {
	var docs []wishlistDoc
	err := r.retry.Do(ctx, op, func(ctx context.Context) error {
		cursor, err := r.coll.Find(ctx, filter)
		if err != nil {
			return err
		}
		docs = nil
		return cursor.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Wishlist, len(docs))
	for i, doc := range docs {
		result[i] = fromDoc(doc)
	}
	return result, nil
}

func toDoc(w *domain.Wishlist) wishlistDoc {
	entries := make([]entryDoc, len(w.Entries))
	for i, e := range w.Entries {
		entries[i] = entryDoc{ID: e.ID, Name: e.Name}
	}
	return wishlistDoc{Name: w.Name, User: w.User, Entries: entries}
}

func fromDoc(doc wishlistDoc) *domain.Wishlist {
	entries := make([]domain.Entry, len(doc.Entries))
	for i, e := range doc.Entries {
		entries[i] = domain.Entry{ID: e.ID, Name: e.Name}
	}
	return &domain.Wishlist{
		ID:      doc.ID.Hex(),
		Name:    doc.Name,
		User:    doc.User,
		Entries: entries,
	}
}
