package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
	"github.com/ersonp/catalog-core/internal/domain/services"
)

// EntityHandler handles entity operations at the application layer.
type EntityHandler struct {
	entityService *services.EntityService
	searchService *services.SearchService // optional
	registry      *registry.Registry
}

// NewEntityHandler creates a new EntityHandler. searchService may be nil,
// in which case the search index is not kept in step with changes.
func NewEntityHandler(entityService *services.EntityService, searchService *services.SearchService, reg *registry.Registry) *EntityHandler {
	return &EntityHandler{
		entityService: entityService,
		searchService: searchService,
		registry:      reg,
	}
}

// CreateEntityRequest is the user input for a new entity.
type CreateEntityRequest struct {
	Type        string // Type name or path name
	ID          string
	Name        string
	Description string
	Platform    string
	Env         string
	Parent      string
	Properties  map[string]string
}

// EntityListResult contains the result of listing entities.
type EntityListResult struct {
	Entities []*entities.Entity `json:"entities"`
	Total    int                `json:"total"`
}

// HandleCreate creates an entity and indexes it when it is searchable.
func (h *EntityHandler) HandleCreate(ctx context.Context, req CreateEntityRequest) (*entities.Entity, error) {
	t, err := h.registry.ResolveType(req.Type)
	if err != nil {
		return nil, err
	}

	e, err := h.entityService.Create(ctx, services.CreateEntityInput{
		Type:        t,
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Platform:    req.Platform,
		Env:         req.Env,
		ParentURN:   entities.URN(req.Parent),
		Properties:  req.Properties,
	})
	if err != nil {
		return nil, err
	}

	if h.searchService != nil {
		if _, err := h.searchService.Index(ctx, []*entities.Entity{e}); err != nil {
			return e, fmt.Errorf("entity %s saved but not indexed: %w", e.URN, err)
		}
	}
	return e, nil
}

// HandleGet returns an entity with its registry presentation.
func (h *EntityHandler) HandleGet(ctx context.Context, rawURN string) (*services.EntityDetails, error) {
	urn, err := entities.ParseURN(rawURN)
	if err != nil {
		return nil, err
	}
	return h.entityService.Describe(ctx, urn)
}

// HandleList returns entities of a type with pagination. An empty type name lists all.
func (h *EntityHandler) HandleList(ctx context.Context, typeName string, limit, offset int) (*EntityListResult, error) {
	var t entities.EntityType
	if typeName != "" {
		resolved, err := h.registry.ResolveType(typeName)
		if err != nil {
			return nil, err
		}
		t = resolved
	}

	entitiesList, err := h.entityService.List(ctx, t, limit, offset)
	if err != nil {
		return nil, err
	}

	count, err := h.entityService.Count(ctx, t)
	if err != nil {
		return nil, err
	}

	return &EntityListResult{
		Entities: entitiesList,
		Total:    count,
	}, nil
}

// HandleSearch searches entities by name pattern.
func (h *EntityHandler) HandleSearch(ctx context.Context, query string, typeNames []string, limit int) (*EntityListResult, error) {
	types, err := resolveTypes(h.registry, typeNames)
	if err != nil {
		return nil, err
	}

	entitiesList, err := h.entityService.Search(ctx, query, types, limit)
	if err != nil {
		return nil, err
	}

	return &EntityListResult{
		Entities: entitiesList,
		Total:    len(entitiesList),
	}, nil
}

// HandleDelete removes an entity, its lineage and owners, and its index entry.
func (h *EntityHandler) HandleDelete(ctx context.Context, rawURN string) error {
	urn, err := entities.ParseURN(rawURN)
	if err != nil {
		return err
	}
	if err := h.entityService.Delete(ctx, urn); err != nil {
		return err
	}
	if h.searchService != nil {
		return h.searchService.Remove(ctx, urn)
	}
	return nil
}

// HandleCount returns the number of entities of a type.
func (h *EntityHandler) HandleCount(ctx context.Context, typeName string) (int, error) {
	if typeName == "" {
		return h.entityService.Count(ctx, "")
	}
	t, err := h.registry.ResolveType(typeName)
	if err != nil {
		return 0, err
	}
	return h.entityService.Count(ctx, t)
}

// resolveTypes resolves type or path names. Nil in, nil out.
func resolveTypes(reg *registry.Registry, names []string) ([]entities.EntityType, error) {
	if len(names) == 0 {
		return nil, nil
	}
	types := make([]entities.EntityType, 0, len(names))
	for _, name := range names {
		t, err := reg.ResolveType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
