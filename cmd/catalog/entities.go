package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/catalog-core/internal/application/handlers"
	"github.com/ersonp/catalog-core/internal/domain/entities"
)

func newEntitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entities",
		Aliases: []string{"entity"},
		Short:   "Manage catalog entities",
		Long: `Create, inspect, list and delete catalog entities.

Entity types can be given by type name (dataset, glossaryTerm) or by
URL path name (glossary, user). Run 'catalog types list' to see them all.`,
	}

	cmd.AddCommand(newEntitiesAddCmd())
	cmd.AddCommand(newEntitiesGetCmd())
	cmd.AddCommand(newEntitiesListCmd())
	cmd.AddCommand(newEntitiesDeleteCmd())

	return cmd
}

func newEntitiesAddCmd() *cobra.Command {
	var req handlers.CreateEntityRequest

	cmd := &cobra.Command{
		Use:   "add <type> <name>",
		Short: "Add an entity",
		Long: `Add an entity to the catalog.

Types with derived keys (dataset, dataFlow, dataJob, mlModel...) build their
URN from --platform, --env and the name. Other types use --id, falling back
to a generated id.

Examples:
  catalog entities add dataset sales.orders --platform snowflake --env prod
  catalog entities add dashboard "Revenue" --id revenue-board
  catalog entities add tag PII --prop color=red`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Type = args[0]
			req.Name = args[1]
			return runEntitiesAdd(cmd, req)
		},
	}

	cmd.Flags().StringVar(&req.ID, "id", "", "Entity id for types without derived keys")
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "Entity description")
	cmd.Flags().StringVar(&req.Platform, "platform", "", "Data platform (e.g. snowflake, airflow)")
	cmd.Flags().StringVar(&req.Env, "env", "", "Fabric environment (e.g. PROD, DEV)")
	cmd.Flags().StringVar(&req.Parent, "parent", "", "Parent entity URN")
	cmd.Flags().StringToStringVar(&req.Properties, "prop", nil, "Custom property as key=value (repeatable)")

	return cmd
}

func runEntitiesAdd(cmd *cobra.Command, req handlers.CreateEntityRequest) error {
	ctx := cmd.Context()

	return withEntityHandler(ctx, func(h *handlers.EntityHandler) error {
		e, err := h.HandleCreate(ctx, req)
		if e == nil {
			return fmt.Errorf("creating entity: %w", err)
		}

		fmt.Printf("Created %s\n", e.URN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		return nil
	})
}

func newEntitiesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <urn>",
		Short: "Show an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withEntityHandler(ctx, func(h *handlers.EntityHandler) error {
				d, err := h.HandleGet(ctx, args[0])
				if err != nil {
					return err
				}

				fmt.Printf("%s %s\n", d.Preview.Icon, d.DisplayName)
				if d.Preview.Subtitle != "" {
					fmt.Printf("  %s\n", d.Preview.Subtitle)
				}
				fmt.Println()
				fmt.Printf("URN:      %s\n", d.Entity.URN)
				fmt.Printf("Type:     %s\n", d.Entity.Type)
				fmt.Printf("URL:      %s\n", d.URL)
				if d.Entity.Description != "" {
					fmt.Printf("About:    %s\n", d.Entity.Description)
				}
				if d.Entity.ParentURN != "" {
					fmt.Printf("Parent:   %s\n", d.Entity.ParentURN)
				}
				fmt.Printf("Created:  %s\n", d.Entity.CreatedAt.Format("2006-01-02 15:04:05"))

				for _, f := range d.Preview.Facts {
					fmt.Printf("%-9s %s\n", f.Label+":", f.Value)
				}

				if len(d.Owners) > 0 {
					fmt.Println()
					fmt.Println("Owners:")
					for _, o := range d.Owners {
						fmt.Printf("  %s (%s)\n", o.OwnerURN, o.OwnershipType)
					}
				}
				return nil
			})
		},
	}
}

func newEntitiesListCmd() *cobra.Command {
	var typeName, searchQuery string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entities",
		Long: `List entities, optionally filtered by type.

Use --search to filter by name instead of listing.

Examples:
  catalog entities list
  catalog entities list --type dataset
  catalog entities list --search orders`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntitiesList(cmd, typeName, searchQuery, limit, offset)
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Entity type or path name")
	cmd.Flags().StringVar(&searchQuery, "search", "", "Search entities by name")
	cmd.Flags().IntVar(&limit, "limit", DefaultListLimit, "Maximum number of entities to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of entities to skip")

	return cmd
}

func runEntitiesList(cmd *cobra.Command, typeName, searchQuery string, limit, offset int) error {
	ctx := cmd.Context()

	return withEntityHandler(ctx, func(h *handlers.EntityHandler) error {
		var result *handlers.EntityListResult
		var err error

		if searchQuery != "" {
			var types []string
			if typeName != "" {
				types = []string{typeName}
			}
			result, err = h.HandleSearch(ctx, searchQuery, types, limit)
		} else {
			result, err = h.HandleList(ctx, typeName, limit, offset)
		}
		if err != nil {
			return fmt.Errorf("listing entities: %w", err)
		}

		if len(result.Entities) == 0 {
			fmt.Println("No entities found.")
			return nil
		}

		fmt.Printf("Entities (%d total):\n", result.Total)
		fmt.Println()
		printEntityTable(result.Entities)

		return nil
	})
}

func printEntityTable(ents []*entities.Entity) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tURN")
	for _, e := range ents {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Type, truncate(e.Name, 40), e.URN)
	}
	w.Flush()
}

func newEntitiesDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <urn>",
		Short: "Delete an entity",
		Long: `Delete an entity together with its lineage edges and owners.

Examples:
  catalog entities delete "urn:li:tag:PII" --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				fmt.Printf("This will delete %s and its lineage. Use --force to confirm.\n", args[0])
				return nil
			}

			return withEntityHandler(ctx, func(h *handlers.EntityHandler) error {
				if err := h.HandleDelete(ctx, args[0]); err != nil {
					return fmt.Errorf("deleting entity: %w", err)
				}
				fmt.Printf("Deleted %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
