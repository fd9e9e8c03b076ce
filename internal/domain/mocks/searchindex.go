package mocks

import (
	"context"

	"github.com/ersonp/catalog-core/internal/domain/entities"
)

// SearchIndex is a mock implementation of ports.SearchIndex.
// Search returns Hits filtered by the requested types.
type SearchIndex struct {
	Docs map[entities.URN]entities.SearchDocument
	Hits []entities.SearchHit
	Err  error

	// Call tracking
	UpsertCallCount int
	LastSearchTypes []entities.EntityType
}

// NewSearchIndex creates an empty mock SearchIndex.
func NewSearchIndex() *SearchIndex {
	return &SearchIndex{Docs: make(map[entities.URN]entities.SearchDocument)}
}

// Upsert records the documents.
func (m *SearchIndex) Upsert(_ context.Context, docs []entities.SearchDocument) error {
	m.UpsertCallCount++
	if m.Err != nil {
		return m.Err
	}
	for _, d := range docs {
		m.Docs[d.URN] = d
	}
	return nil
}

// Search returns the configured hits.
func (m *SearchIndex) Search(_ context.Context, _ []float32, types []entities.EntityType, limit int) ([]entities.SearchHit, error) {
	m.LastSearchTypes = types
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.SearchHit
	for _, h := range m.Hits {
		if !typeIn(h.Type, types) {
			continue
		}
		result = append(result, h)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

// Delete removes a document.
func (m *SearchIndex) Delete(_ context.Context, urn entities.URN) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Docs, urn)
	return nil
}

// Count returns the number of recorded documents.
func (m *SearchIndex) Count(_ context.Context) (uint64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return uint64(len(m.Docs)), nil
}
