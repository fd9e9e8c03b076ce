package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/catalog-core/internal/application/handlers"
)

func newLineageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lineage",
		Short: "Manage lineage between entities",
		Long: `Record and inspect lineage edges. An edge points from an upstream
entity to the downstream entity that depends on it. Both ends must be of a
lineage-enabled type.`,
	}

	cmd.AddCommand(newLineageAddCmd())
	cmd.AddCommand(newLineageListCmd())
	cmd.AddCommand(newLineageDeleteCmd())

	return cmd
}

func newLineageAddCmd() *cobra.Command {
	var lineageType string

	cmd := &cobra.Command{
		Use:   "add <upstream-urn> <downstream-urn>",
		Short: "Add a lineage edge",
		Long: `Add a lineage edge from upstream to downstream.

Examples:
  catalog lineage add "urn:li:dataset:(urn:li:dataPlatform:s3,raw,PROD)" \
    "urn:li:dataset:(urn:li:dataPlatform:snowflake,mart,PROD)" --type DownstreamOf`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withLineageHandler(ctx, func(h *handlers.LineageHandler) error {
				edge, err := h.HandleCreate(ctx, args[0], lineageType, args[1])
				if err != nil {
					return fmt.Errorf("creating lineage: %w", err)
				}
				fmt.Printf("Created lineage %s: %s -[%s]-> %s\n", edge.ID, edge.UpstreamURN, edge.Type, edge.DownstreamURN)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&lineageType, "type", "t", "DownstreamOf", "Lineage type (DownstreamOf, Produces, Consumes)")

	return cmd
}

func newLineageListCmd() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "list <urn>",
		Short: "Show lineage for an entity",
		Long: `Show the direct lineage edges of an entity and the entities reachable
upstream and downstream within --depth hops.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if depth < 1 || depth > MaxLineageDepth {
				return fmt.Errorf("--depth must be between 1 and %d", MaxLineageDepth)
			}
			ctx := cmd.Context()

			return withLineageHandler(ctx, func(h *handlers.LineageHandler) error {
				result, err := h.HandleList(ctx, args[0], handlers.LineageListOptions{Depth: depth})
				if err != nil {
					return fmt.Errorf("listing lineage: %w", err)
				}

				if len(result.Edges) == 0 {
					fmt.Printf("No lineage found for %s.\n", result.URN)
					return nil
				}

				fmt.Printf("Lineage for %s:\n\n", result.URN)

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tUPSTREAM\tTYPE\tDOWNSTREAM")
				for _, info := range result.Edges {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						truncate(info.Edge.ID, 12),
						nameOr(info.UpstreamName, string(info.Edge.UpstreamURN)),
						info.Edge.Type,
						nameOr(info.DownstreamName, string(info.Edge.DownstreamURN)))
				}
				if err := w.Flush(); err != nil {
					return err
				}

				fmt.Printf("\nUpstreams (depth %d): %d\n", depth, len(result.Upstreams))
				for _, u := range result.Upstreams {
					fmt.Printf("  %s\n", u)
				}
				fmt.Printf("Downstreams (depth %d): %d\n", depth, len(result.Downstreams))
				for _, d := range result.Downstreams {
					fmt.Printf("  %s\n", d)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 1, "Traversal depth for upstreams and downstreams")

	return cmd
}

func newLineageDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <edge-id>",
		Short: "Delete a lineage edge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withLineageHandler(ctx, func(h *handlers.LineageHandler) error {
				if err := h.HandleDelete(ctx, args[0]); err != nil {
					return fmt.Errorf("deleting lineage: %w", err)
				}
				fmt.Printf("Deleted lineage %s\n", args[0])
				return nil
			})
		},
	}
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
