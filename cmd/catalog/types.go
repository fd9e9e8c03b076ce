package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/catalog-core/internal/application/handlers"
	"github.com/ersonp/catalog-core/internal/domain/plugins"
)

func newTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Inspect registered entity types",
		Long:  "Lists the entity types known to the catalog and the capabilities of each.",
	}

	cmd.AddCommand(newTypesListCmd())
	cmd.AddCommand(newTypesDescribeCmd())

	return cmd
}

func newTypesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all entity types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEntityTypeHandler(func(h *handlers.EntityTypeHandler) error {
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TYPE\tPATH\tNAME\tSEARCH\tBROWSE\tLINEAGE")
				for _, info := range h.HandleList() {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						info.Type, info.PathName, info.EntityName,
						yesNo(info.Search), yesNo(info.Browse), yesNo(info.Lineage))
				}
				return w.Flush()
			})
		},
	}
}

func newTypesDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <type>",
		Short: "Show details for an entity type",
		Long: `Shows details for an entity type. The type may be given by its
type name or by its URL path name.

Examples:
  catalog types describe dataset
  catalog types describe glossaryTerm
  catalog types describe glossary`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEntityTypeHandler(func(h *handlers.EntityTypeHandler) error {
				info, err := h.HandleDescribe(args[0])
				if err != nil {
					return err
				}

				fmt.Printf("Type:        %s\n", info.Type)
				fmt.Printf("Name:        %s\n", info.EntityName)
				fmt.Printf("Collection:  %s\n", info.CollectionName)
				fmt.Printf("Path:        /%s\n", info.PathName)
				fmt.Printf("Icon:        %s\n", info.Icon)
				fmt.Printf("Search:      %s\n", yesNo(info.Search))
				fmt.Printf("Browse:      %s\n", yesNo(info.Browse))
				fmt.Printf("Lineage:     %s\n", yesNo(info.Lineage))
				fmt.Printf("Derived key: %s\n", yesNo(info.DerivedKey))
				return nil
			})
		},
	}
}

// withEntityTypeHandler builds a handler over the plugin registry. It needs
// no configuration or storage.
func withEntityTypeHandler(fn func(*handlers.EntityTypeHandler) error) error {
	reg, err := plugins.NewRegistry()
	if err != nil {
		return fmt.Errorf("building entity registry: %w", err)
	}
	return fn(handlers.NewEntityTypeHandler(reg))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
