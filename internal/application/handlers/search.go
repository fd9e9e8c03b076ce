package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/catalog-core/internal/domain/registry"
	"github.com/ersonp/catalog-core/internal/domain/services"
)

// SearchHandler handles semantic search and indexing.
type SearchHandler struct {
	service  *services.SearchService
	registry *registry.Registry
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(service *services.SearchService, reg *registry.Registry) *SearchHandler {
	return &SearchHandler{
		service:  service,
		registry: reg,
	}
}

// SearchResponse contains the result of a search.
type SearchResponse struct {
	Query   string                  `json:"query"`
	Results []services.SearchResult `json:"results"`
}

// Handle searches for entities matching the query, optionally restricted
// to the given type or path names.
func (h *SearchHandler) Handle(ctx context.Context, query string, typeNames []string, limit int) (*SearchResponse, error) {
	types, err := resolveTypes(h.registry, typeNames)
	if err != nil {
		return nil, err
	}

	results, err := h.service.Search(ctx, query, types, limit)
	if err != nil {
		return nil, fmt.Errorf("searching entities: %w", err)
	}

	return &SearchResponse{
		Query:   query,
		Results: results,
	}, nil
}

// HandleReindex re-embeds every entity in the catalog.
func (h *SearchHandler) HandleReindex(ctx context.Context) (*services.IndexResult, error) {
	return h.service.IndexAll(ctx)
}
