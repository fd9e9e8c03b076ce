package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ersonp/catalog-core/internal/application/handlers"
	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/plugins"
	"github.com/ersonp/catalog-core/internal/domain/registry"
	"github.com/ersonp/catalog-core/internal/domain/services"
	"github.com/ersonp/catalog-core/internal/infrastructure/config"
	embedder "github.com/ersonp/catalog-core/internal/infrastructure/embedder/openai"
	"github.com/ersonp/catalog-core/internal/infrastructure/logging"
	"github.com/ersonp/catalog-core/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/catalog-core/internal/infrastructure/vectordb/qdrant"
)

// errSearchDisabled is returned by commands that need the search index
// when no embedder API key is configured.
var errSearchDisabled = errors.New("search is disabled: set OPENAI_API_KEY or embedder.api_key in .catalog/config.yaml")

// internalDeps holds every dependency a command may need. The search
// components are nil when no embedder is configured.
type internalDeps struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Registry *registry.Registry
	Actor    entities.Actor

	catalogDB      *sqlite.Repository
	repo           *qdrant.Repository
	entityService  *services.EntityService
	ownershipTypes *services.OwnershipTypeService
	searchService  *services.SearchService
}

// loadConfig loads the configuration of the catalog in the working directory.
func loadConfig() (string, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("getting current directory: %w", err)
	}

	if !config.Exists(cwd) {
		return "", nil, fmt.Errorf("no catalog found in %s (run 'catalog init' first)", cwd)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return "", nil, fmt.Errorf("loading config: %w", err)
	}
	return cwd, cfg, nil
}

// newLogger builds the process logger, honouring --debug.
func newLogger(cfg *config.Config) zerolog.Logger {
	logCfg := cfg.Log
	if globalDebug {
		logCfg.Level = "debug"
	}
	return logging.New("catalog", logCfg, os.Stderr)
}

// withInternalDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	actorURN, err := entities.ParseURN(cfg.Catalog.Actor)
	if err != nil {
		return fmt.Errorf("catalog.actor: %w", err)
	}

	reg, err := plugins.NewRegistry()
	if err != nil {
		return fmt.Errorf("building entity registry: %w", err)
	}

	catalogDB, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer catalogDB.Close()

	if err := catalogDB.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	d := &internalDeps{
		Config:   cfg,
		Logger:   logger,
		Registry: reg,
		Actor: entities.Actor{
			URN:                 actorURN,
			CanManageGlossaries: cfg.Catalog.ManageGlossaries,
		},
		catalogDB:      catalogDB,
		entityService:  services.NewEntityService(catalogDB, reg, logger),
		ownershipTypes: services.NewOwnershipTypeService(catalogDB, logger),
	}

	if cfg.Embedder.APIKey == "" {
		logger.Debug().Msg("no embedder api key configured, search index disabled")
		return fn(d)
	}

	emb, err := embedder.NewEmbedder(cfg.Embedder)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	repo, err := qdrant.NewRepository(cfg.Qdrant)
	if err != nil {
		return fmt.Errorf("creating qdrant repository: %w", err)
	}
	defer repo.Close()

	d.repo = repo
	d.searchService = services.NewSearchService(emb, repo, catalogDB, reg, logger)

	return fn(d)
}

// withEntityHandler provides access to the EntityHandler for entity commands.
func withEntityHandler(ctx context.Context, fn func(*handlers.EntityHandler) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(handlers.NewEntityHandler(d.entityService, d.searchService, d.Registry))
	})
}

// withSearchHandler provides the SearchHandler, failing when search is disabled.
func withSearchHandler(ctx context.Context, fn func(*handlers.SearchHandler) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		if d.searchService == nil {
			return errSearchDisabled
		}
		return fn(handlers.NewSearchHandler(d.searchService, d.Registry))
	})
}

// withLineageHandler provides access to the LineageHandler for lineage commands.
func withLineageHandler(ctx context.Context, fn func(*handlers.LineageHandler) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		lineageService := services.NewLineageService(d.catalogDB, d.Registry, d.Logger)
		return fn(handlers.NewLineageHandler(lineageService, d.catalogDB))
	})
}

// withGlossaryHandler provides a GlossaryHandler acting as the configured actor.
func withGlossaryHandler(ctx context.Context, fn func(*handlers.GlossaryHandler) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		glossaryService := services.NewGlossaryService(d.entityService, d.catalogDB, d.ownershipTypes, d.Logger)
		return fn(handlers.NewGlossaryHandler(glossaryService, d.Actor))
	})
}

// withOwnershipTypeHandler provides access to the OwnershipTypeHandler.
func withOwnershipTypeHandler(ctx context.Context, fn func(*handlers.OwnershipTypeHandler) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(handlers.NewOwnershipTypeHandler(d.ownershipTypes))
	})
}

// withImportHandler creates an ImportHandler and calls the provided function.
func withImportHandler(ctx context.Context, fn func(*handlers.ImportHandler) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		importService := services.NewImportService(d.entityService, d.catalogDB, d.Registry, d.Logger)
		return fn(handlers.NewImportHandler(importService, d.searchService))
	})
}
