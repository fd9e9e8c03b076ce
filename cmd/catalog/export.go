package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/ports"
	"github.com/ersonp/catalog-core/internal/domain/registry"
	"github.com/ersonp/catalog-core/internal/infrastructure/parsers"
)

type exportFlags struct {
	format   string
	output   string
	typeName string
	limit    int
}

type exporter struct {
	catalogDB ports.CatalogDB
	registry  *registry.Registry
	format    string
	output    string
}

// exportEntity is the exported form of an entity. Its fields line up with
// parsers.RawEntity so exports can be imported again; import keeps the urn
// rather than deriving a new one.
type exportEntity struct {
	URN         string            `json:"urn"`
	ID          string            `json:"id,omitempty"` // Only for types without derived keys
	Type        string            `json:"type"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Platform    string            `json:"platform,omitempty"`
	Env         string            `json:"env,omitempty"`
	Parent      string            `json:"parent,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
}

// exportGroup holds the entities of one type under its collection label.
type exportGroup struct {
	Collection string
	Entities   []exportEntity
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entities to file",
		Long: `Exports entities to JSON, CSV, or markdown format, grouped by type.

JSON and CSV exports can be loaded back with 'catalog import'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&flags.typeName, "type", "t", "", "Filter by entity type or path name")
	cmd.Flags().IntVarP(&flags.limit, "limit", "l", DefaultExportLimit, "Maximum number of entities to export")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	ctx := cmd.Context()

	return withInternalDeps(ctx, func(d *internalDeps) error {
		e := &exporter{
			catalogDB: d.catalogDB,
			registry:  d.Registry,
			format:    flags.format,
			output:    flags.output,
		}

		groups, err := e.fetchGroups(ctx, flags.typeName, flags.limit)
		if err != nil {
			return err
		}

		return e.export(groups)
	})
}

// fetchGroups lists up to limit entities in registry order, one group per
// type that has any.
func (e *exporter) fetchGroups(ctx context.Context, typeName string, limit int) ([]exportGroup, error) {
	plugins := e.registry.GetEntities()
	if typeName != "" {
		t, err := e.registry.ResolveType(typeName)
		if err != nil {
			return nil, err
		}
		p, err := e.registry.GetEntity(t)
		if err != nil {
			return nil, err
		}
		plugins = []registry.Plugin{p}
	}

	var groups []exportGroup
	remaining := limit
	for _, p := range plugins {
		if remaining <= 0 {
			break
		}

		ents, err := e.catalogDB.ListEntities(ctx, p.Type(), remaining, 0)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", p.CollectionName(), err)
		}
		if len(ents) == 0 {
			continue
		}

		groups = append(groups, toExportGroup(p, ents))
		remaining -= len(ents)
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("no entities found to export")
	}

	return groups, nil
}

func toExportGroup(p registry.Plugin, ents []*entities.Entity) exportGroup {
	_, derived := p.(registry.KeyBuilder)

	group := exportGroup{
		Collection: p.CollectionName(),
		Entities:   make([]exportEntity, 0, len(ents)),
	}
	for _, ent := range ents {
		group.Entities = append(group.Entities, toExportEntity(ent, derived))
	}
	return group
}

func toExportEntity(ent *entities.Entity, derivedKey bool) exportEntity {
	out := exportEntity{
		URN:         string(ent.URN),
		Type:        string(ent.Type),
		Name:        ent.Name,
		Description: ent.Description,
		Platform:    ent.Platform,
		Env:         ent.Property(entities.PropEnv),
		Parent:      string(ent.ParentURN),
	}
	if !derivedKey {
		out.ID = ent.URN.Key()
	}

	for k, v := range ent.Properties {
		if k == entities.PropEnv {
			continue
		}
		if out.Properties == nil {
			out.Properties = make(map[string]string, len(ent.Properties))
		}
		out.Properties[k] = v
	}
	return out
}

func (e *exporter) export(groups []exportGroup) (err error) {
	var w io.Writer
	var f *os.File

	if e.output != "" {
		f, err = os.OpenFile(e.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	} else {
		w = os.Stdout
	}

	if err := e.formatGroups(w, groups); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if e.output != "" {
		fmt.Printf("Exported %d entities to %s\n", countEntities(groups), e.output)
	}

	return nil
}

func (e *exporter) formatGroups(w io.Writer, groups []exportGroup) error {
	switch e.format {
	case "json":
		return formatJSON(w, groups)
	case "csv":
		return formatCSV(w, groups)
	case "markdown":
		return formatMarkdown(w, groups)
	default:
		return fmt.Errorf("unknown format: %s", e.format)
	}
}

// formatJSON writes a flat array so the output is a valid import file.
func formatJSON(w io.Writer, groups []exportGroup) error {
	all := make([]exportEntity, 0, countEntities(groups))
	for _, g := range groups {
		all = append(all, g.Entities...)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(all)
}

func formatCSV(w io.Writer, groups []exportGroup) error {
	writer := csv.NewWriter(w)

	propKeys := make(map[string]struct{})
	for _, g := range groups {
		for _, ent := range g.Entities {
			for k := range ent.Properties {
				propKeys[k] = struct{}{}
			}
		}
	}
	sortedKeys := slices.Sorted(maps.Keys(propKeys))

	header := []string{"urn", "id", "type", "name", "description", "platform", "env", "parent"}
	for _, k := range sortedKeys {
		header = append(header, parsers.PropertyColumnPrefix+k)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, g := range groups {
		for _, ent := range g.Entities {
			row := []string{
				ent.URN,
				ent.ID,
				ent.Type,
				ent.Name,
				ent.Description,
				ent.Platform,
				ent.Env,
				ent.Parent,
			}
			for _, k := range sortedKeys {
				row = append(row, ent.Properties[k])
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, groups []exportGroup) error {
	if _, err := fmt.Fprintf(w, "# Exported Entities\n\nTotal: %d entities\n", countEntities(groups)); err != nil {
		return err
	}

	for _, g := range groups {
		if _, err := fmt.Fprintf(w, "\n## %s (%d)\n\n", g.Collection, len(g.Entities)); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "| Name | Platform | Description | URN |\n"); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "|------|----------|-------------|-----|\n"); err != nil {
			return err
		}

		for _, ent := range g.Entities {
			if _, err := fmt.Fprintf(w, "| %s | %s | %s | `%s` |\n",
				escapeMarkdown(ent.Name),
				escapeMarkdown(ent.Platform),
				escapeMarkdown(truncate(ent.Description, 80)),
				ent.URN,
			); err != nil {
				return err
			}
		}
	}

	return nil
}

func countEntities(groups []exportGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Entities)
	}
	return n
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func contains(slice []string, item string) bool {
	return slices.Contains(slice, item)
}
