package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/catalog-core/internal/domain/services"
	"github.com/ersonp/catalog-core/internal/infrastructure/parsers"
)

// ImportHandler handles importing entities from files.
type ImportHandler struct {
	service       *services.ImportService
	searchService *services.SearchService // optional
}

// NewImportHandler creates a new import handler. When searchService is
// not nil, imported entities are indexed as well.
func NewImportHandler(service *services.ImportService, searchService *services.SearchService) *ImportHandler {
	return &ImportHandler{
		service:       service,
		searchService: searchService,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format     string                    // "json", "csv", or "auto"
	DryRun     bool                      // Validate without saving
	OnConflict services.ConflictStrategy // How to handle existing entities
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Indexed  int
	Errors   []services.ImportError
}

// Handle imports entities from a file.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	raws, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	if len(raws) == 0 {
		return &ImportResult{}, nil
	}

	serviceResult, err := h.service.Import(ctx, raws, services.ImportOptions{
		DryRun:     opts.DryRun,
		OnConflict: opts.OnConflict,
	})
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Imported: serviceResult.Imported,
		Skipped:  serviceResult.Skipped,
		Errors:   serviceResult.Errors,
	}

	if h.searchService != nil && len(serviceResult.Entities) > 0 {
		indexed, err := h.searchService.Index(ctx, serviceResult.Entities)
		if err != nil {
			return result, fmt.Errorf("indexing imported entities: %w", err)
		}
		result.Indexed = indexed.Indexed
	}

	return result, nil
}
