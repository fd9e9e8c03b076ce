package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ersonp/catalog-core/internal/application/handlers"
)

func newSearchCmd() *cobra.Command {
	var (
		limit     int
		typeNames []string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Semantic search over entities",
		Long: `Performs semantic search to find entities matching the query.

By default every searchable type is searched. Use --type (repeatable) to
restrict the search. Requires an embedder API key and a running Qdrant.

Examples:
  catalog search "customer orders"
  catalog search revenue --type dashboard --type chart`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], typeNames, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultSearchLimit, "Maximum number of results")
	cmd.Flags().StringSliceVarP(&typeNames, "type", "t", nil, "Restrict to entity type or path name")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, typeNames []string, limit int) error {
	ctx := cmd.Context()

	return withSearchHandler(ctx, func(h *handlers.SearchHandler) error {
		resp, err := h.Handle(ctx, query, typeNames, limit)
		if err != nil {
			return err
		}

		if len(resp.Results) == 0 {
			fmt.Println("No entities found.")
			return nil
		}

		fmt.Printf("Found %d entities:\n\n", len(resp.Results))

		for i, r := range resp.Results {
			fmt.Printf("%d. %s %s (%.2f)\n", i+1, r.Preview.Icon, r.Preview.Title, r.Hit.Score)
			if r.Preview.Subtitle != "" {
				fmt.Printf("   %s\n", r.Preview.Subtitle)
			}
			if r.Preview.Description != "" {
				fmt.Printf("   %s\n", truncate(r.Preview.Description, 100))
			}
			fmt.Printf("   %s\n", r.URL)
		}

		return nil
	})
}

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the search index",
		Long:  "Re-embeds every searchable entity in the catalog and upserts it into Qdrant.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withSearchHandler(ctx, func(h *handlers.SearchHandler) error {
				result, err := h.HandleReindex(ctx)
				if err != nil {
					return fmt.Errorf("indexing entities: %w", err)
				}

				p := message.NewPrinter(language.English)
				p.Printf("Indexed %d entities (%d not searchable)\n", result.Indexed, result.Skipped)
				return nil
			})
		},
	}
}
