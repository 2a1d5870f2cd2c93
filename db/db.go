package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the MongoDB collections behind the history/persistence
// operations. A nil *Store is a valid "not configured" store: every read
// degrades cleanly and IsConfigured reports false.
type Store struct {
	client *mongo.Client
	posts  *mongo.Collection
}

// extractDBName parses the database name from the URI, defaulting to "copyforge"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "copyforge"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "copyforge"
}

// Connect establishes a connection to MongoDB using the provided URI and
// returns the store handle. Construct once at startup and pass down; never
// reinitialize mid-process.
func Connect(ctx context.Context, uri string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(extractDBName(uri))
	return &Store{
		client: client,
		posts:  database.Collection("posts"),
	}, nil
}

// IsConfigured reports whether a backing database is available. The
// generation pipeline skips the history path entirely when false.
func (s *Store) IsConfigured() bool {
	return s != nil && s.posts != nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
