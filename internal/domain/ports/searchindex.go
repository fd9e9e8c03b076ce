package ports

import (
	"context"

	"github.com/ersonp/catalog-core/internal/domain/entities"
)

// SearchIndex stores entity embeddings for semantic search.
type SearchIndex interface {
	// Upsert indexes documents, replacing earlier versions of the same URN.
	Upsert(ctx context.Context, docs []entities.SearchDocument) error

	// Search returns the closest documents. An empty types slice searches all types.
	Search(ctx context.Context, embedding []float32, types []entities.EntityType, limit int) ([]entities.SearchHit, error)

	// Delete removes the document for urn, if any.
	Delete(ctx context.Context, urn entities.URN) error

	// Count returns the number of indexed documents.
	Count(ctx context.Context) (uint64, error)
}
