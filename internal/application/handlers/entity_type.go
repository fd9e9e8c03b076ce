package handlers

import (
	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// EntityTypeInfo summarises one registered entity type.
type EntityTypeInfo struct {
	Type           entities.EntityType `json:"type"`
	PathName       string              `json:"path_name"`
	EntityName     string              `json:"entity_name"`
	CollectionName string              `json:"collection_name"`
	Icon           string              `json:"icon"`
	Search         bool                `json:"search"`
	Browse         bool                `json:"browse"`
	Lineage        bool                `json:"lineage"`
	DerivedKey     bool                `json:"derived_key"` // URN key is built from attributes, not an id
}

// EntityTypeHandler exposes the entity registry.
type EntityTypeHandler struct {
	registry *registry.Registry
}

// NewEntityTypeHandler creates a new EntityTypeHandler.
func NewEntityTypeHandler(reg *registry.Registry) *EntityTypeHandler {
	return &EntityTypeHandler{
		registry: reg,
	}
}

// HandleList returns every registered entity type in registration order.
func (h *EntityTypeHandler) HandleList() []EntityTypeInfo {
	plugins := h.registry.GetEntities()
	result := make([]EntityTypeInfo, len(plugins))
	for i, p := range plugins {
		result[i] = typeInfo(p)
	}
	return result
}

// HandleDescribe returns details about one type, named by type or path name.
func (h *EntityTypeHandler) HandleDescribe(name string) (*EntityTypeInfo, error) {
	t, err := h.registry.ResolveType(name)
	if err != nil {
		return nil, err
	}
	p, err := h.registry.GetEntity(t)
	if err != nil {
		return nil, err
	}
	info := typeInfo(p)
	return &info, nil
}

func typeInfo(p registry.Plugin) EntityTypeInfo {
	_, derived := p.(registry.KeyBuilder)
	return EntityTypeInfo{
		Type:           p.Type(),
		PathName:       p.PathName(),
		EntityName:     p.EntityName(),
		CollectionName: p.CollectionName(),
		Icon:           p.Icon(),
		Search:         p.IsSearchEnabled(),
		Browse:         p.IsBrowseEnabled(),
		Lineage:        p.IsLineageEnabled(),
		DerivedKey:     derived,
	}
}
