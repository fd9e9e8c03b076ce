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
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// CreateEntityInput holds the attributes of a new catalog entity.
// Which of ID, Platform, Env and ParentURN matter depends on the type's key.
// A non-empty URN is used as is instead of deriving one.
type CreateEntityInput struct {
	Type        entities.EntityType
	URN         entities.URN
	ID          string
	Name        string
	Description string
	Platform    string
	Env         string
	ParentURN   entities.URN
	Properties  map[string]string
}

// EntityDetails is an entity together with everything the registry knows
// about how to present it.
type EntityDetails struct {
	Entity      *entities.Entity `json:"entity"`
	DisplayName string           `json:"display_name"`
	URL         string           `json:"url"`
	Preview     registry.Preview `json:"preview"`
	Owners      []entities.Owner `json:"owners,omitempty"`
}

// EntityService manages entity operations.
type EntityService struct {
	catalogDB ports.CatalogDB
	registry  *registry.Registry
	logger    zerolog.Logger
}

// NewEntityService creates a new EntityService.
func NewEntityService(catalogDB ports.CatalogDB, reg *registry.Registry, logger zerolog.Logger) *EntityService {
	return &EntityService{
		catalogDB: catalogDB,
		registry:  reg,
		logger:    logger.With().Str("service", "entity").Logger(),
	}
}

// BuildURN derives the URN for an entity of type t. Plugins that implement
// registry.KeyBuilder decide the key; otherwise the id is used, and a random
// UUID stands in when no id is given.
func (s *EntityService) BuildURN(t entities.EntityType, in registry.KeyInput) (entities.URN, error) {
	p, err := s.registry.GetEntity(t)
	if err != nil {
		return "", err
	}

	if kb, ok := p.(registry.KeyBuilder); ok {
		key, err := kb.BuildKey(in)
		if err != nil {
			return "", err
		}
		return entities.NewURN(t, key), nil
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.New().String()
	}
	return entities.NewURN(t, id), nil
}

// newEntity validates in and builds the entity it describes without saving it.
// Glossary terms and nodes go through GlossaryService, which enforces the
// creator checks this path does not.
func (s *EntityService) newEntity(in CreateEntityInput) (*entities.Entity, error) {
	if in.Type == entities.EntityTypeGlossaryTerm || in.Type == entities.EntityTypeGlossaryNode {
		return nil, entities.NewValidationError("type",
			fmt.Sprintf("%s entities are created with 'catalog glossary'", in.Type))
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, entities.NewValidationError("name", "name is required")
	}

	var parent entities.URN
	if in.ParentURN != "" {
		p, err := entities.ParseURN(string(in.ParentURN))
		if err != nil {
			return nil, err
		}
		parent = p
	}

	urn, err := s.entityURN(in, name, parent)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e := &entities.Entity{
		URN:            urn,
		Type:           in.Type,
		Name:           name,
		NormalizedName: entities.NormalizeName(name),
		Description:    strings.TrimSpace(in.Description),
		Platform:       strings.TrimSpace(in.Platform),
		ParentURN:      parent,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for k, v := range in.Properties {
		e.SetProperty(k, v)
	}
	if env := strings.TrimSpace(in.Env); env != "" {
		e.SetProperty(entities.PropEnv, strings.ToUpper(env))
	}
	return e, nil
}

// entityURN returns in.URN when given, checked against in.Type, and the
// derived URN otherwise.
func (s *EntityService) entityURN(in CreateEntityInput, name string, parent entities.URN) (entities.URN, error) {
	if strings.TrimSpace(string(in.URN)) == "" {
		return s.BuildURN(in.Type, registry.KeyInput{
			ID:        in.ID,
			Name:      name,
			Platform:  in.Platform,
			Env:       in.Env,
			ParentURN: parent,
		})
	}

	if _, err := s.registry.GetEntity(in.Type); err != nil {
		return "", err
	}
	urn, err := entities.ParseURN(string(in.URN))
	if err != nil {
		return "", err
	}
	if urn.EntityType() != in.Type {
		return "", entities.NewValidationError("urn",
			fmt.Sprintf("%s is not a %s urn", urn, in.Type))
	}
	return urn, nil
}

// Create adds a new entity. Creating an entity whose URN is already taken
// fails with an AlreadyExistsError.
func (s *EntityService) Create(ctx context.Context, in CreateEntityInput) (*entities.Entity, error) {
	e, err := s.newEntity(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.catalogDB.FindEntity(ctx, e.URN)
	if err != nil {
		return nil, fmt.Errorf("checking entity: %w", err)
	}
	if existing != nil {
		return nil, entities.NewAlreadyExistsError("entity", string(e.URN))
	}

	if err := s.save(ctx, e, nil); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("urn", string(e.URN)).Msg("entity created")
	return e, nil
}

// save stores e and records the creation in the audit log.
func (s *EntityService) save(ctx context.Context, e *entities.Entity, details map[string]any) error {
	if err := s.catalogDB.SaveEntity(ctx, e); err != nil {
		return fmt.Errorf("saving entity: %w", err)
	}
	if details == nil {
		details = map[string]any{}
	}
	details["type"] = string(e.Type)
	details["name"] = e.Name
	recordAudit(ctx, s.catalogDB, s.logger, entities.AuditEntityCreate, e.URN, details)
	return nil
}

// Get returns the entity with the given URN.
func (s *EntityService) Get(ctx context.Context, urn entities.URN) (*entities.Entity, error) {
	e, err := s.catalogDB.FindEntity(ctx, urn)
	if err != nil {
		return nil, fmt.Errorf("finding entity: %w", err)
	}
	if e == nil {
		return nil, entities.NewNotFoundError("entity", string(urn))
	}
	return e, nil
}

// Describe returns the entity with its display name, URL, preview and owners.
func (s *EntityService) Describe(ctx context.Context, urn entities.URN) (*EntityDetails, error) {
	e, err := s.Get(ctx, urn)
	if err != nil {
		return nil, err
	}

	preview, err := s.registry.RenderPreview(e)
	if err != nil {
		return nil, err
	}
	displayName, err := s.registry.GetDisplayName(e)
	if err != nil {
		return nil, err
	}
	url, err := s.registry.GetEntityURL(e.Type, e.URN)
	if err != nil {
		return nil, err
	}

	owners, err := s.catalogDB.FindOwners(ctx, urn)
	if err != nil {
		return nil, fmt.Errorf("finding owners: %w", err)
	}

	return &EntityDetails{
		Entity:      e,
		DisplayName: displayName,
		URL:         url,
		Preview:     preview,
		Owners:      owners,
	}, nil
}

// List returns entities of a type with pagination. An empty type lists all.
func (s *EntityService) List(ctx context.Context, t entities.EntityType, limit, offset int) ([]*entities.Entity, error) {
	if t != "" {
		if _, err := s.registry.GetEntity(t); err != nil {
			return nil, err
		}
	}
	return s.catalogDB.ListEntities(ctx, t, limit, offset)
}

// Search matches entity names against query.
func (s *EntityService) Search(ctx context.Context, query string, types []entities.EntityType, limit int) ([]*entities.Entity, error) {
	return s.catalogDB.SearchEntities(ctx, query, types, limit)
}

// Count returns the number of entities of a type. An empty type counts all.
func (s *EntityService) Count(ctx context.Context, t entities.EntityType) (int, error) {
	return s.catalogDB.CountEntities(ctx, t)
}

// Delete removes an entity together with its lineage and owners.
func (s *EntityService) Delete(ctx context.Context, urn entities.URN) error {
	if _, err := s.Get(ctx, urn); err != nil {
		return err
	}

	if err := s.catalogDB.DeleteLineageByEntity(ctx, urn); err != nil {
		return fmt.Errorf("deleting entity lineage: %w", err)
	}
	if err := s.catalogDB.DeleteOwnersByEntity(ctx, urn); err != nil {
		return fmt.Errorf("deleting entity owners: %w", err)
	}
	if err := s.catalogDB.DeleteEntity(ctx, urn); err != nil {
		return fmt.Errorf("deleting entity: %w", err)
	}

	recordAudit(ctx, s.catalogDB, s.logger, entities.AuditEntityDelete, urn, nil)
	return nil
}
