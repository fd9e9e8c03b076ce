// Package main provides the entry point for the catalog CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version     = "0.1.0-dev"
	globalDebug bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := newRootCmd()
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "catalog",
		Short:         "A metadata catalog for datasets, dashboards, pipelines and ML assets",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&globalDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInitCmd(),
		newTypesCmd(),
		newEntitiesCmd(),
		newGlossaryCmd(),
		newOwnershipCmd(),
		newLineageCmd(),
		newSearchCmd(),
		newIndexCmd(),
		newImportCmd(),
		newExportCmd(),
	)

	return rootCmd
}
