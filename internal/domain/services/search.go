package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/ports"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// DefaultSearchLimit is the default number of results to return.
const DefaultSearchLimit = 10

// indexPageSize is how many entities IndexAll embeds per batch.
const indexPageSize = 100

// IndexResult reports how many entities were indexed.
type IndexResult struct {
	Indexed int `json:"indexed"`
	Skipped int `json:"skipped"` // Types that are not searchable
}

// SearchResult is a search hit with its URL and preview card.
type SearchResult struct {
	Hit     entities.SearchHit `json:"hit"`
	URL     string             `json:"url"`
	Preview registry.Preview   `json:"preview"`
}

// SearchService handles semantic search over catalog entities.
type SearchService struct {
	embedder  ports.Embedder
	index     ports.SearchIndex
	catalogDB ports.CatalogDB
	registry  *registry.Registry
	logger    zerolog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(
	embedder ports.Embedder,
	index ports.SearchIndex,
	catalogDB ports.CatalogDB,
	reg *registry.Registry,
	logger zerolog.Logger,
) *SearchService {
	return &SearchService{
		embedder:  embedder,
		index:     index,
		catalogDB: catalogDB,
		registry:  reg,
		logger:    logger.With().Str("service", "search").Logger(),
	}
}

// Index embeds and upserts ents. Entities whose type is not search-enabled
// are counted as skipped.
func (s *SearchService) Index(ctx context.Context, ents []*entities.Entity) (*IndexResult, error) {
	result := &IndexResult{}

	docs := make([]entities.SearchDocument, 0, len(ents))
	for _, e := range ents {
		p, err := s.registry.GetEntity(e.Type)
		if err != nil {
			return nil, err
		}
		if !p.IsSearchEnabled() {
			result.Skipped++
			continue
		}
		docs = append(docs, entities.SearchDocument{
			URN:  e.URN,
			Type: e.Type,
			Name: p.DisplayName(e),
			Text: searchText(p, e),
		})
	}

	if len(docs) == 0 {
		return result, nil
	}

	texts := make([]string, len(docs))
	for i := range docs {
		texts[i] = docs[i].Text
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("generating embeddings: %w", err)
	}
	if len(embeddings) != len(docs) {
		return nil, fmt.Errorf("embedder returned %d embeddings for %d documents", len(embeddings), len(docs))
	}
	for i := range docs {
		docs[i].Embedding = embeddings[i]
	}

	if err := s.index.Upsert(ctx, docs); err != nil {
		return nil, fmt.Errorf("indexing entities: %w", err)
	}

	result.Indexed = len(docs)
	return result, nil
}

// IndexAll re-indexes every entity in the catalog.
func (s *SearchService) IndexAll(ctx context.Context) (*IndexResult, error) {
	total := &IndexResult{}
	for offset := 0; ; offset += indexPageSize {
		page, err := s.catalogDB.ListEntities(ctx, "", indexPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("listing entities: %w", err)
		}
		if len(page) == 0 {
			break
		}

		res, err := s.Index(ctx, page)
		if err != nil {
			return nil, err
		}
		total.Indexed += res.Indexed
		total.Skipped += res.Skipped
		s.logger.Debug().Int("offset", offset).Int("indexed", res.Indexed).Msg("indexed page")

		if len(page) < indexPageSize {
			break
		}
	}
	return total, nil
}

// searchText is the text embedded for an entity: "<EntityName>: <DisplayName>. <Description>".
func searchText(p registry.Plugin, e *entities.Entity) string {
	text := p.EntityName() + ": " + p.DisplayName(e) + "."
	if d := strings.TrimSpace(e.Description); d != "" {
		text += " " + d
	}
	return text
}

// Search finds entities semantically similar to query. With no types, all
// search-enabled types are searched; asking for a type that is not
// search-enabled is an error.
func (s *SearchService) Search(ctx context.Context, query string, types []entities.EntityType, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, entities.NewValidationError("query", "query is required")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	if len(types) == 0 {
		types = s.registry.GetSearchEntityTypes()
	}
	for _, t := range types {
		p, err := s.registry.GetEntity(t)
		if err != nil {
			return nil, err
		}
		if !p.IsSearchEnabled() {
			return nil, entities.NewValidationError("type", fmt.Sprintf("%s is not searchable", p.CollectionName()))
		}
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	hits, err := s.index.Search(ctx, embedding, types, limit)
	if err != nil {
		return nil, fmt.Errorf("searching entities: %w", err)
	}
	if len(hits) == 0 {
		return []SearchResult{}, nil
	}

	return s.resolveHits(ctx, hits)
}

// resolveHits loads the entities behind hits, in hit order. Hits whose
// entity has since been deleted are dropped.
func (s *SearchService) resolveHits(ctx context.Context, hits []entities.SearchHit) ([]SearchResult, error) {
	urns := make([]entities.URN, len(hits))
	for i := range hits {
		urns[i] = hits[i].URN
	}
	found, err := s.catalogDB.FindEntitiesByURNs(ctx, urns)
	if err != nil {
		return nil, fmt.Errorf("loading hit entities: %w", err)
	}
	byURN := make(map[entities.URN]*entities.Entity, len(found))
	for _, e := range found {
		byURN[e.URN] = e
	}

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		e, ok := byURN[hit.URN]
		if !ok {
			s.logger.Debug().Str("urn", string(hit.URN)).Msg("dropping stale search hit")
			continue
		}
		preview, err := s.registry.RenderPreview(e)
		if err != nil {
			return nil, err
		}
		results = append(results, SearchResult{
			Hit:     hit,
			URL:     preview.URL,
			Preview: preview,
		})
	}
	return results, nil
}

// Remove drops urn from the index.
func (s *SearchService) Remove(ctx context.Context, urn entities.URN) error {
	if err := s.index.Delete(ctx, urn); err != nil {
		return fmt.Errorf("removing %s from index: %w", urn, err)
	}
	return nil
}

// Count returns the number of indexed entities.
func (s *SearchService) Count(ctx context.Context) (uint64, error) {
	return s.index.Count(ctx)
}
