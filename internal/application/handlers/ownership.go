package handlers

import (
	"context"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/services"
)

// OwnershipTypeHandler handles ownership type operations.
type OwnershipTypeHandler struct {
	service *services.OwnershipTypeService
}

// NewOwnershipTypeHandler creates a new OwnershipTypeHandler.
func NewOwnershipTypeHandler(service *services.OwnershipTypeService) *OwnershipTypeHandler {
	return &OwnershipTypeHandler{
		service: service,
	}
}

// HandleList returns all ownership types.
func (h *OwnershipTypeHandler) HandleList(ctx context.Context) ([]entities.OwnershipType, error) {
	return h.service.List(ctx)
}

// HandleAdd creates a custom ownership type.
func (h *OwnershipTypeHandler) HandleAdd(ctx context.Context, name, description string) error {
	return h.service.Add(ctx, name, description)
}

// HandleRemove deletes a custom ownership type.
func (h *OwnershipTypeHandler) HandleRemove(ctx context.Context, name string) error {
	return h.service.Remove(ctx, name)
}
