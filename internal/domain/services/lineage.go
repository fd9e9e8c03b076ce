package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/ports"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// DefaultLineageDepth is the traversal depth used when none is given.
const DefaultLineageDepth = 1

// LineageService manages lineage edges between entities.
type LineageService struct {
	catalogDB ports.CatalogDB
	registry  *registry.Registry
	logger    zerolog.Logger
}

// NewLineageService creates a new LineageService.
func NewLineageService(catalogDB ports.CatalogDB, reg *registry.Registry, logger zerolog.Logger) *LineageService {
	return &LineageService{
		catalogDB: catalogDB,
		registry:  reg,
		logger:    logger.With().Str("service", "lineage").Logger(),
	}
}

// Create adds an edge from upstream to downstream. Both entities must exist
// and both of their types must take part in lineage.
func (s *LineageService) Create(
	ctx context.Context,
	upstream entities.URN,
	lineageType entities.LineageType,
	downstream entities.URN,
) (*entities.LineageEdge, error) {
	if !lineageType.IsValid() {
		return nil, entities.NewValidationError("type", fmt.Sprintf("unknown lineage type %q (valid: %v)", lineageType, entities.LineageTypes))
	}
	if upstream == downstream {
		return nil, entities.NewValidationError("downstream", "an entity cannot be its own upstream")
	}

	found, err := s.catalogDB.FindEntitiesByURNs(ctx, []entities.URN{upstream, downstream})
	if err != nil {
		return nil, fmt.Errorf("checking entities exist: %w", err)
	}
	byURN := make(map[entities.URN]*entities.Entity, len(found))
	for _, e := range found {
		byURN[e.URN] = e
	}
	for _, urn := range []entities.URN{upstream, downstream} {
		e, ok := byURN[urn]
		if !ok {
			return nil, entities.NewNotFoundError("entity", string(urn))
		}
		if err := s.requireLineageEnabled(e.Type); err != nil {
			return nil, err
		}
	}

	existing, err := s.catalogDB.FindLineageBetween(ctx, upstream, downstream)
	if err != nil {
		return nil, fmt.Errorf("checking existing lineage: %w", err)
	}
	if existing != nil {
		return nil, entities.NewAlreadyExistsError("lineage edge", existing.ID)
	}

	edge := &entities.LineageEdge{
		ID:            uuid.New().String(),
		UpstreamURN:   upstream,
		DownstreamURN: downstream,
		Type:          lineageType,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.catalogDB.SaveLineage(ctx, edge); err != nil {
		return nil, fmt.Errorf("saving lineage: %w", err)
	}

	recordAudit(ctx, s.catalogDB, s.logger, entities.AuditLineageCreate, downstream, map[string]any{
		"id":       edge.ID,
		"upstream": string(upstream),
		"type":     string(lineageType),
	})
	return edge, nil
}

func (s *LineageService) requireLineageEnabled(t entities.EntityType) error {
	p, err := s.registry.GetEntity(t)
	if err != nil {
		return err
	}
	if !p.IsLineageEnabled() {
		return entities.NewValidationError("type", fmt.Sprintf("%s entities do not take part in lineage", p.EntityName()))
	}
	return nil
}

// List returns every edge touching urn.
func (s *LineageService) List(ctx context.Context, urn entities.URN) ([]entities.LineageEdge, error) {
	return s.catalogDB.FindLineageByEntity(ctx, urn)
}

// Upstreams returns the entities feeding urn, up to depth hops away.
func (s *LineageService) Upstreams(ctx context.Context, urn entities.URN, depth int) ([]entities.URN, error) {
	if depth < 1 {
		depth = DefaultLineageDepth
	}
	urns, err := s.catalogDB.FindUpstreams(ctx, urn, depth)
	if err != nil {
		return nil, fmt.Errorf("finding upstreams: %w", err)
	}
	return urns, nil
}

// Downstreams returns the entities fed by urn, up to depth hops away.
func (s *LineageService) Downstreams(ctx context.Context, urn entities.URN, depth int) ([]entities.URN, error) {
	if depth < 1 {
		depth = DefaultLineageDepth
	}
	urns, err := s.catalogDB.FindDownstreams(ctx, urn, depth)
	if err != nil {
		return nil, fmt.Errorf("finding downstreams: %w", err)
	}
	return urns, nil
}

// Delete removes an edge by ID.
func (s *LineageService) Delete(ctx context.Context, id string) error {
	if err := s.catalogDB.DeleteLineage(ctx, id); err != nil {
		return fmt.Errorf("deleting lineage: %w", err)
	}
	recordAudit(ctx, s.catalogDB, s.logger, entities.AuditLineageDelete, "", map[string]any{"id": id})
	return nil
}

// Count returns the total number of edges.
func (s *LineageService) Count(ctx context.Context) (int, error) {
	return s.catalogDB.CountLineage(ctx)
}
