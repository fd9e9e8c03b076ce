// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/catalog-core/internal/domain/ports"
	"github.com/ersonp/catalog-core/internal/domain/services"
	"github.com/ersonp/catalog-core/internal/infrastructure/config"
	embedder "github.com/ersonp/catalog-core/internal/infrastructure/embedder/openai"
)

// WriteInitialConfig writes the default configuration into basePath and
// loads it back. It fails when a catalog already exists there.
func WriteInitialConfig(basePath string) (*config.Config, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("catalog already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// InitHandler prepares the stores of a freshly configured catalog.
type InitHandler struct {
	catalogDB         ports.CatalogDB
	ownershipTypes    *services.OwnershipTypeService
	collectionManager ports.CollectionManager
}

// NewInitHandler creates a new init handler. collectionManager may be nil
// when no search index is configured.
func NewInitHandler(catalogDB ports.CatalogDB, ownershipTypes *services.OwnershipTypeService, collectionManager ports.CollectionManager) *InitHandler {
	return &InitHandler{
		catalogDB:         catalogDB,
		ownershipTypes:    ownershipTypes,
		collectionManager: collectionManager,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath     string
	DatabasePath   string
	CollectionName string
	OwnershipTypes int
}

// Handle creates the schema, seeds the default ownership types and creates
// the search collection.
func (h *InitHandler) Handle(ctx context.Context, basePath string, cfg *config.Config) (*InitResult, error) {
	if err := h.catalogDB.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if err := h.ownershipTypes.LoadDefaults(ctx); err != nil {
		return nil, fmt.Errorf("seeding ownership types: %w", err)
	}
	types, err := h.ownershipTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ownership types: %w", err)
	}

	result := &InitResult{
		ConfigPath:     config.ConfigFilePath(basePath),
		DatabasePath:   cfg.SQLite.Path,
		OwnershipTypes: len(types),
	}

	if h.collectionManager != nil {
		if err := h.collectionManager.EnsureCollection(ctx, embedder.VectorSize); err != nil {
			return nil, fmt.Errorf("creating collection: %w", err)
		}
		result.CollectionName = cfg.Qdrant.Collection
	}

	return result, nil
}
