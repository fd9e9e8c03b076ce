package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/ports"
	"github.com/ersonp/catalog-core/internal/domain/registry"
	"github.com/ersonp/catalog-core/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle existing entities during import.
type ConflictStrategy string

const (
	// ConflictSkip skips entities whose URN already exists.
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite overwrites existing entities with new data.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle existing entities
}

// ImportError represents an error for a specific entity during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
	Entities []*entities.Entity // Saved entities, empty on dry run
}

// ImportService handles importing entities from external sources.
type ImportService struct {
	entities  *EntityService
	catalogDB ports.CatalogDB
	registry  *registry.Registry
	logger    zerolog.Logger
}

// NewImportService creates a new import service.
func NewImportService(entityService *EntityService, catalogDB ports.CatalogDB, reg *registry.Registry, logger zerolog.Logger) *ImportService {
	return &ImportService{
		entities:  entityService,
		catalogDB: catalogDB,
		registry:  reg,
		logger:    logger.With().Str("service", "import").Logger(),
	}
}

// Import validates raw entities and saves the valid ones. Rows that fail
// validation are reported in the result and do not stop the import.
func (s *ImportService) Import(ctx context.Context, raws []parsers.RawEntity, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	ents, validationErrors := s.convertAll(raws)
	result.Errors = validationErrors

	if len(ents) == 0 {
		return result, nil
	}

	toSave, skipped, err := s.resolveConflicts(ctx, ents, opts.OnConflict)
	if err != nil {
		return nil, err
	}
	result.Skipped = skipped

	if opts.DryRun {
		result.Imported = len(toSave)
		return result, nil
	}

	for _, e := range toSave {
		if err := s.entities.save(ctx, e, map[string]any{"source": "import"}); err != nil {
			return nil, fmt.Errorf("saving %s: %w", e.URN, err)
		}
	}
	result.Imported = len(toSave)
	result.Entities = toSave

	s.logger.Info().Int("imported", result.Imported).Int("skipped", result.Skipped).Int("errors", len(result.Errors)).Msg("import finished")
	return result, nil
}

// convertAll turns raw rows into entities. A URN repeated within the same
// input is reported against the later row.
func (s *ImportService) convertAll(raws []parsers.RawEntity) ([]*entities.Entity, []ImportError) {
	ents := make([]*entities.Entity, 0, len(raws))
	var errs []ImportError
	seen := make(map[entities.URN]int, len(raws))

	for i := range raws {
		raw := &raws[i]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		e, ierr := s.convert(raw, lineNum)
		if ierr != nil {
			errs = append(errs, *ierr)
			continue
		}
		if first, dup := seen[e.URN]; dup {
			errs = append(errs, ImportError{
				Line:    lineNum,
				Field:   "id",
				Value:   string(e.URN),
				Message: fmt.Sprintf("duplicate urn %s (first seen on line %d)", e.URN, first),
			})
			continue
		}
		seen[e.URN] = lineNum
		ents = append(ents, e)
	}

	return ents, errs
}

// convert validates a single raw entity and builds it.
func (s *ImportService) convert(raw *parsers.RawEntity, lineNum int) (*entities.Entity, *ImportError) {
	if strings.TrimSpace(raw.Type) == "" {
		return nil, &ImportError{Line: lineNum, Field: "type", Message: "missing required field: type"}
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, &ImportError{Line: lineNum, Field: "name", Message: "missing required field: name"}
	}

	t, err := s.registry.ResolveType(raw.Type)
	if err != nil {
		return nil, &ImportError{
			Line:    lineNum,
			Field:   "type",
			Value:   raw.Type,
			Message: fmt.Sprintf("unknown entity type %q", raw.Type),
		}
	}

	e, err := s.entities.newEntity(CreateEntityInput{
		Type:        t,
		URN:         entities.URN(raw.URN),
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Platform:    raw.Platform,
		Env:         raw.Env,
		ParentURN:   entities.URN(raw.Parent),
		Properties:  raw.Properties,
	})
	if err != nil {
		ierr := &ImportError{Line: lineNum, Message: err.Error()}
		var verr *entities.ValidationError
		if errors.As(err, &verr) {
			ierr.Field = verr.Field
			ierr.Message = verr.Message
		}
		return nil, ierr
	}
	return e, nil
}

// resolveConflicts drops existing entities under ConflictSkip and keeps
// their CreatedAt under ConflictOverwrite.
func (s *ImportService) resolveConflicts(ctx context.Context, ents []*entities.Entity, onConflict ConflictStrategy) ([]*entities.Entity, int, error) {
	urns := make([]entities.URN, len(ents))
	for i, e := range ents {
		urns[i] = e.URN
	}

	// Single batch query instead of N queries
	existing, err := s.catalogDB.FindEntitiesByURNs(ctx, urns)
	if err != nil {
		return nil, 0, fmt.Errorf("checking existing entities: %w", err)
	}
	byURN := make(map[entities.URN]*entities.Entity, len(existing))
	for _, e := range existing {
		byURN[e.URN] = e
	}

	toSave := make([]*entities.Entity, 0, len(ents))
	var skipped int
	for _, e := range ents {
		old, exists := byURN[e.URN]
		switch {
		case !exists:
			toSave = append(toSave, e)
		case onConflict == ConflictSkip:
			skipped++
		default:
			e.CreatedAt = old.CreatedAt
			toSave = append(toSave, e)
		}
	}
	return toSave, skipped, nil
}
