package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/catalog-core/internal/application/handlers"
	"github.com/ersonp/catalog-core/internal/domain/entities"
)

type glossaryCreateFunc func(context.Context, handlers.GlossaryRequest) (*entities.Entity, error)

func newGlossaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Manage the business glossary",
		Long: `Create glossary terms and the nodes that group them.

Mutations run as the actor configured under catalog.actor (or CATALOG_ACTOR),
who becomes the technical owner of anything it creates.`,
	}

	cmd.AddCommand(newGlossaryCreateCmd("create-term", "Create a glossary term",
		func(h *handlers.GlossaryHandler) glossaryCreateFunc { return h.HandleCreateTerm }))
	cmd.AddCommand(newGlossaryCreateCmd("create-node", "Create a glossary node",
		func(h *handlers.GlossaryHandler) glossaryCreateFunc { return h.HandleCreateNode }))

	return cmd
}

func newGlossaryCreateCmd(use, short string, pick func(*handlers.GlossaryHandler) glossaryCreateFunc) *cobra.Command {
	var req handlers.GlossaryRequest

	cmd := &cobra.Command{
		Use:   use + " [name]",
		Short: short,
		Long: short + `.

The id defaults to a generated one and the name defaults to the id.
--parent must name an existing glossary node.

Examples:
  catalog glossary ` + use + ` Revenue --id revenue
  catalog glossary ` + use + ` "Net Revenue" --parent urn:li:glossaryNode:finance`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				req.Name = args[0]
			}

			return withGlossaryHandler(ctx, func(h *handlers.GlossaryHandler) error {
				e, err := pick(h)(ctx, req)
				if err != nil {
					return err
				}
				fmt.Printf("Created %s (%s)\n", e.URN, e.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.ID, "id", "", "Id of the new entity")
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "Definition")
	cmd.Flags().StringVar(&req.Parent, "parent", "", "Parent glossary node URN")

	return cmd
}
