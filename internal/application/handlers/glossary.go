package handlers

import (
	"context"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/services"
)

// GlossaryHandler creates glossary terms and nodes on behalf of one actor.
type GlossaryHandler struct {
	service *services.GlossaryService
	actor   entities.Actor
}

// NewGlossaryHandler creates a new GlossaryHandler.
func NewGlossaryHandler(service *services.GlossaryService, actor entities.Actor) *GlossaryHandler {
	return &GlossaryHandler{
		service: service,
		actor:   actor,
	}
}

// GlossaryRequest is the user input for a new term or node.
type GlossaryRequest struct {
	ID          string
	Name        string
	Description string
	Parent      string // glossaryNode URN, optional
}

// HandleCreateTerm creates a glossary term.
func (h *GlossaryHandler) HandleCreateTerm(ctx context.Context, req GlossaryRequest) (*entities.Entity, error) {
	return h.service.CreateTerm(ctx, h.actor, toGlossaryInput(req))
}

// HandleCreateNode creates a glossary node.
func (h *GlossaryHandler) HandleCreateNode(ctx context.Context, req GlossaryRequest) (*entities.Entity, error) {
	return h.service.CreateNode(ctx, h.actor, toGlossaryInput(req))
}

func toGlossaryInput(req GlossaryRequest) services.CreateGlossaryEntityInput {
	return services.CreateGlossaryEntityInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		ParentNode:  entities.URN(req.Parent),
	}
}
