package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/catalog-core/internal/application/handlers"
)

func newOwnershipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ownership",
		Short: "Manage ownership types",
		Long: `Manage the ownership types that can be assigned to owners.

The default types (TECHNICAL_OWNER, BUSINESS_OWNER, DATA_STEWARD, NONE)
are created by 'catalog init' and cannot be removed.`,
	}

	cmd.AddCommand(newOwnershipListCmd())
	cmd.AddCommand(newOwnershipAddCmd())
	cmd.AddCommand(newOwnershipRemoveCmd())

	return cmd
}

func newOwnershipListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ownership types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withOwnershipTypeHandler(ctx, func(h *handlers.OwnershipTypeHandler) error {
				types, err := h.HandleList(ctx)
				if err != nil {
					return fmt.Errorf("listing ownership types: %w", err)
				}

				if len(types) == 0 {
					fmt.Println("No ownership types defined.")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tDESCRIPTION")
				for _, ot := range types {
					fmt.Fprintf(w, "%s\t%s\n", ot.Name, truncate(ot.Description, 60))
				}
				return w.Flush()
			})
		},
	}
}

func newOwnershipAddCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an ownership type",
		Long: `Add an ownership type. Names are upper-cased and must consist of
letters, digits and underscores.

Examples:
  catalog ownership add DATA_ENGINEER -d "Builds the pipelines"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withOwnershipTypeHandler(ctx, func(h *handlers.OwnershipTypeHandler) error {
				if err := h.HandleAdd(ctx, args[0], description); err != nil {
					return err
				}
				fmt.Printf("Added ownership type: %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Description")

	return cmd
}

func newOwnershipRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a custom ownership type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withOwnershipTypeHandler(ctx, func(h *handlers.OwnershipTypeHandler) error {
				if err := h.HandleRemove(ctx, args[0]); err != nil {
					return err
				}
				fmt.Printf("Removed ownership type: %s\n", args[0])
				return nil
			})
		},
	}
}
