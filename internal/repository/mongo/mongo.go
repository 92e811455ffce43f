// Package mongo provides the document-store wishlist backend. Each wishlist
// is an independent document addressed by an opaque ObjectID; identity
// assignment is delegated to the database. All backend calls go through a
// bounded retry with exponential backoff.
package mongo

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect establishes and verifies a client connection. Connection attempts
// are retried like any other backend call; a failure after the attempt
// ceiling is a startup-fatal condition for the caller.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	retry := DefaultRetryPolicy()

	var client *mongo.Client
	err := retry.Do(ctx, "connect", func(ctx context.Context) error {
		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		if err := c.Ping(ctx, readpref.Primary()); err != nil {
			_ = c.Disconnect(ctx)
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Msg("Connected to document store")
	return client, nil
}

// Disconnect closes the client connection.
func Disconnect(ctx context.Context, client *mongo.Client) error {
	retry := DefaultRetryPolicy()
	return retry.Do(ctx, "disconnect", func(ctx context.Context) error {
		return client.Disconnect(ctx)
	})
}
