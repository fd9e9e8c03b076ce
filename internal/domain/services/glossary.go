package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/ports"
)

// TermSourceInternal marks terms authored in the catalog itself.
const TermSourceInternal = "INTERNAL"

// CreateGlossaryEntityInput holds the attributes of a new glossary term or node.
type CreateGlossaryEntityInput struct {
	ID          string
	Name        string
	Description string
	ParentNode  entities.URN
}

// glossaryExistsError carries the user facing duplicate message while still
// matching entities.ErrAlreadyExists.
type glossaryExistsError struct {
	msg string
}

func (e *glossaryExistsError) Error() string {
	return e.msg
}

func (e *glossaryExistsError) Is(target error) bool {
	return target == entities.ErrAlreadyExists
}

// GlossaryService creates business glossary terms and term groups.
type GlossaryService struct {
	entities       *EntityService
	catalogDB      ports.CatalogDB
	ownershipTypes *OwnershipTypeService
	logger         zerolog.Logger
}

// NewGlossaryService creates a new GlossaryService.
func NewGlossaryService(
	entityService *EntityService,
	catalogDB ports.CatalogDB,
	ownershipTypes *OwnershipTypeService,
	logger zerolog.Logger,
) *GlossaryService {
	return &GlossaryService{
		entities:       entityService,
		catalogDB:      catalogDB,
		ownershipTypes: ownershipTypes,
		logger:         logger.With().Str("service", "glossary").Logger(),
	}
}

// CreateTerm creates a glossary term owned by actor.
func (s *GlossaryService) CreateTerm(ctx context.Context, actor entities.Actor, in CreateGlossaryEntityInput) (*entities.Entity, error) {
	return s.create(ctx, actor, entities.EntityTypeGlossaryTerm, "GlossaryTerm", "This Glossary Term already exists!", in)
}

// CreateNode creates a glossary node (term group) owned by actor.
func (s *GlossaryService) CreateNode(ctx context.Context, actor entities.Actor, in CreateGlossaryEntityInput) (*entities.Entity, error) {
	return s.create(ctx, actor, entities.EntityTypeGlossaryNode, "GlossaryNode", "This Glossary Node already exists!", in)
}

func (s *GlossaryService) create(
	ctx context.Context,
	actor entities.Actor,
	t entities.EntityType,
	label string,
	existsMsg string,
	in CreateGlossaryEntityInput,
) (*entities.Entity, error) {
	if !actor.CanManageGlossaries {
		return nil, entities.ErrUnauthorized
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.New().String()
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = id
	}

	wrap := func(err error) error {
		return fmt.Errorf("failed to create %s with id: %s, name: %s: %w", label, id, name, err)
	}

	e, err := s.buildGlossaryEntity(ctx, t, id, name, in)
	if err != nil {
		return nil, wrap(err)
	}

	existing, err := s.catalogDB.FindEntity(ctx, e.URN)
	if err != nil {
		return nil, wrap(err)
	}
	if existing != nil {
		return nil, wrap(&glossaryExistsError{msg: existsMsg})
	}

	if err := s.entities.save(ctx, e, map[string]any{"actor": string(actor.URN)}); err != nil {
		return nil, wrap(err)
	}
	if err := s.addCreatorAsOwner(ctx, actor, e.URN); err != nil {
		return nil, wrap(err)
	}

	s.logger.Debug().Str("urn", string(e.URN)).Str("actor", string(actor.URN)).Msg("glossary entity created")
	return e, nil
}

func (s *GlossaryService) buildGlossaryEntity(
	ctx context.Context,
	t entities.EntityType,
	id, name string,
	in CreateGlossaryEntityInput,
) (*entities.Entity, error) {
	var parent entities.URN
	if in.ParentNode != "" {
		p, err := entities.ParseURN(string(in.ParentNode))
		if err != nil {
			return nil, err
		}
		if p.EntityType() != entities.EntityTypeGlossaryNode {
			return nil, entities.NewValidationError("parentNode", fmt.Sprintf("%q is not a %s urn", p, entities.EntityTypeGlossaryNode))
		}
		node, err := s.catalogDB.FindEntity(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("finding parent node: %w", err)
		}
		if node == nil {
			return nil, entities.NewNotFoundError("glossary node", string(p))
		}
		parent = p
	}

	now := time.Now().UTC()
	e := &entities.Entity{
		URN:            entities.NewURN(t, id),
		Type:           t,
		Name:           name,
		NormalizedName: entities.NormalizeName(name),
		Description:    in.Description,
		ParentURN:      parent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if t == entities.EntityTypeGlossaryTerm {
		e.SetProperty(entities.PropTermSource, TermSourceInternal)
	}
	return e, nil
}

// addCreatorAsOwner makes actor a technical owner of urn, or a plain owner
// when the technical owner type has been removed.
func (s *GlossaryService) addCreatorAsOwner(ctx context.Context, actor entities.Actor, urn entities.URN) error {
	ownershipType := entities.OwnershipTechnicalOwner
	if !s.ownershipTypes.Exists(ctx, ownershipType) {
		s.logger.Warn().Str("urn", string(urn)).Msg("Technical owner does not exist, defaulting to None ownership.")
		ownershipType = entities.OwnershipNone
	}

	kind := entities.OwnerKindCorpUser
	if actor.URN.EntityType() == entities.EntityTypeCorpGroup {
		kind = entities.OwnerKindCorpGroup
	}

	owner := &entities.Owner{
		EntityURN:     urn,
		OwnerURN:      actor.URN,
		Kind:          kind,
		OwnershipType: ownershipType,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.catalogDB.SaveOwner(ctx, owner); err != nil {
		return fmt.Errorf("adding owner: %w", err)
	}

	recordAudit(ctx, s.catalogDB, s.logger, entities.AuditOwnerAdd, urn, map[string]any{
		"owner":          string(actor.URN),
		"ownership_type": ownershipType,
	})
	return nil
}
