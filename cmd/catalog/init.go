package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/catalog-core/internal/application/handlers"
	"github.com/ersonp/catalog-core/internal/domain/ports"
	"github.com/ersonp/catalog-core/internal/domain/services"
	"github.com/ersonp/catalog-core/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/catalog-core/internal/infrastructure/vectordb/qdrant"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new catalog",
		Long: `Creates a .catalog directory with default configuration, the SQLite
catalog database and the default ownership types.

When an embedder API key is available (OPENAI_API_KEY), the Qdrant search
collection is created as well.`,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := handlers.WriteInitialConfig(cwd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	catalogDB, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer catalogDB.Close()

	var collections ports.CollectionManager
	if cfg.Embedder.APIKey != "" {
		repo, err := qdrant.NewRepository(cfg.Qdrant)
		if err != nil {
			return fmt.Errorf("connecting to qdrant: %w", err)
		}
		defer repo.Close()
		collections = repo
	} else {
		logger.Debug().Msg("no embedder api key configured, skipping search collection")
	}

	ownershipTypes := services.NewOwnershipTypeService(catalogDB, logger)
	initHandler := handlers.NewInitHandler(catalogDB, ownershipTypes, collections)

	result, err := initHandler.Handle(ctx, cwd, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s\n", result.ConfigPath)
	fmt.Printf("Created database: %s (%d ownership types)\n", result.DatabasePath, result.OwnershipTypes)
	if result.CollectionName != "" {
		fmt.Printf("Created Qdrant collection: %s\n", result.CollectionName)
	} else {
		fmt.Println("Search collection skipped (no embedder API key).")
	}
	fmt.Println("Catalog initialized successfully!")

	return nil
}
