// Package ports defines interfaces for external service communication.
package ports

import "context"

// CollectionManager handles search collection lifecycle operations.
// It is kept apart from SearchIndex so that read paths never need the
// permissions to create or drop collections.
type CollectionManager interface {
	// EnsureCollection creates the collection if it doesn't exist.
	EnsureCollection(ctx context.Context, vectorSize uint64) error

	// DeleteCollection removes the collection and all indexed documents.
	DeleteCollection(ctx context.Context) error
}
