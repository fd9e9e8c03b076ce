package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/ports"
)

// validOwnershipTypeRegex allows upper case alphanumerics and underscores.
var validOwnershipTypeRegex = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// OwnershipTypeService manages ownership types.
type OwnershipTypeService struct {
	catalogDB ports.CatalogDB
	logger    zerolog.Logger
	cache     map[string]bool
	cacheMu   sync.RWMutex
}

// NewOwnershipTypeService creates a new OwnershipTypeService.
func NewOwnershipTypeService(catalogDB ports.CatalogDB, logger zerolog.Logger) *OwnershipTypeService {
	return &OwnershipTypeService{
		catalogDB: catalogDB,
		logger:    logger.With().Str("service", "ownership_type").Logger(),
	}
}

// LoadDefaults seeds the default ownership types. Types already present are left alone.
func (s *OwnershipTypeService) LoadDefaults(ctx context.Context) error {
	existing, err := s.catalogDB.ListOwnershipTypes(ctx)
	if err != nil {
		return fmt.Errorf("listing ownership types: %w", err)
	}

	existingSet := make(map[string]bool, len(existing))
	for _, ot := range existing {
		existingSet[ot.Name] = true
	}

	now := time.Now().UTC()
	for _, ot := range entities.DefaultOwnershipTypes {
		if existingSet[ot.Name] {
			continue
		}
		otCopy := ot
		otCopy.CreatedAt = now
		if err := s.catalogDB.SaveOwnershipType(ctx, &otCopy); err != nil {
			return fmt.Errorf("seeding ownership type %s: %w", ot.Name, err)
		}
	}
	s.invalidateCache()
	return nil
}

// List returns all ownership types.
func (s *OwnershipTypeService) List(ctx context.Context) ([]entities.OwnershipType, error) {
	return s.catalogDB.ListOwnershipTypes(ctx)
}

// Get returns an ownership type by name.
func (s *OwnershipTypeService) Get(ctx context.Context, name string) (*entities.OwnershipType, error) {
	ot, err := s.catalogDB.FindOwnershipType(ctx, normalizeOwnershipType(name))
	if err != nil {
		return nil, fmt.Errorf("finding ownership type: %w", err)
	}
	if ot == nil {
		return nil, entities.NewNotFoundError("ownership type", name)
	}
	return ot, nil
}

// Add creates a custom ownership type. Names are upper-cased first.
func (s *OwnershipTypeService) Add(ctx context.Context, name, description string) error {
	name = normalizeOwnershipType(name)

	if !validOwnershipTypeRegex.MatchString(name) {
		return entities.NewValidationError("name", "must be alphanumeric with underscores, starting with a letter")
	}

	existing, err := s.catalogDB.FindOwnershipType(ctx, name)
	if err != nil {
		return fmt.Errorf("checking ownership type: %w", err)
	}
	if existing != nil {
		return entities.NewAlreadyExistsError("ownership type", name)
	}

	ot := &entities.OwnershipType{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.catalogDB.SaveOwnershipType(ctx, ot); err != nil {
		return fmt.Errorf("saving ownership type: %w", err)
	}

	s.invalidateCache()
	return nil
}

// Remove deletes a custom ownership type.
func (s *OwnershipTypeService) Remove(ctx context.Context, name string) error {
	name = normalizeOwnershipType(name)
	if entities.IsDefaultOwnershipType(name) {
		return entities.NewValidationError("name", fmt.Sprintf("cannot remove default ownership type '%s'", name))
	}

	existing, err := s.catalogDB.FindOwnershipType(ctx, name)
	if err != nil {
		return fmt.Errorf("checking ownership type: %w", err)
	}
	if existing == nil {
		return entities.NewNotFoundError("ownership type", name)
	}

	if err := s.catalogDB.DeleteOwnershipType(ctx, name); err != nil {
		return fmt.Errorf("deleting ownership type: %w", err)
	}

	s.invalidateCache()
	return nil
}

// Exists reports whether an ownership type is present. Lookups are served
// from a cache that Add, Remove and LoadDefaults invalidate.
func (s *OwnershipTypeService) Exists(ctx context.Context, name string) bool {
	name = normalizeOwnershipType(name)

	s.cacheMu.RLock()
	if s.cache != nil {
		ok := s.cache[name]
		s.cacheMu.RUnlock()
		return ok
	}
	s.cacheMu.RUnlock()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	// Another goroutine may have filled it meanwhile.
	if s.cache != nil {
		return s.cache[name]
	}

	types, err := s.catalogDB.ListOwnershipTypes(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("loading ownership types")
		return false
	}

	s.cache = make(map[string]bool, len(types))
	for _, ot := range types {
		s.cache[ot.Name] = true
	}
	return s.cache[name]
}

func (s *OwnershipTypeService) invalidateCache() {
	s.cacheMu.Lock()
	s.cache = nil
	s.cacheMu.Unlock()
}

func normalizeOwnershipType(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
