// Package plugins implements a registry.Plugin for every catalog entity type.
package plugins

import (
	"fmt"
	"strings"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// DefaultEnv is the fabric used when a platform-qualified key has no env.
const DefaultEnv = "PROD"

// maxPreviewDescription bounds the description shown on preview cards.
const maxPreviewDescription = 140

// base holds the static description of a type. Concrete plugins embed it
// and add their own display name and preview logic.
type base struct {
	typ        entities.EntityType
	path       string
	collection string
	name       string
	icon       string
	search     bool
	browse     bool
	lineage    bool
}

func (b *base) Type() entities.EntityType { return b.typ }
func (b *base) PathName() string          { return b.path }
func (b *base) CollectionName() string    { return b.collection }
func (b *base) EntityName() string        { return b.name }
func (b *base) Icon() string              { return b.icon }
func (b *base) IsSearchEnabled() bool     { return b.search }
func (b *base) IsBrowseEnabled() bool     { return b.browse }
func (b *base) IsLineageEnabled() bool    { return b.lineage }

// DisplayName falls back from the name to the URN key.
func (b *base) DisplayName(e *entities.Entity) string {
	return firstNonEmpty(e.Property(entities.PropDisplayName), e.Name, e.URN.Key())
}

// render builds a preview with the shared fields filled in.
func (b *base) render(e *entities.Entity, title string, facts ...registry.PreviewFact) registry.Preview {
	subtitle := b.name
	if e.Platform != "" {
		subtitle = b.name + " · " + e.Platform
	}
	return registry.Preview{
		Type:        b.typ,
		URN:         e.URN,
		Title:       title,
		Subtitle:    subtitle,
		Description: truncate(e.Description, maxPreviewDescription),
		Icon:        b.icon,
		Facts:       nonEmptyFacts(facts),
	}
}

func fact(label, value string) registry.PreviewFact {
	return registry.PreviewFact{Label: label, Value: value}
}

// nonEmptyFacts drops facts without a value.
func nonEmptyFacts(facts []registry.PreviewFact) []registry.PreviewFact {
	out := facts[:0:0]
	for _, f := range facts {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// truncate shortens a string to max runes with ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// platformName accepts either a bare platform name or a dataPlatform URN.
func platformName(platform string) string {
	platform = strings.TrimSpace(platform)
	if strings.HasPrefix(platform, entities.URNPrefix) {
		return entities.URN(platform).Key()
	}
	return strings.ToLower(platform)
}

func requireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return entities.NewValidationError(field, fmt.Sprintf("%s is required", field))
	}
	return nil
}

func envOrDefault(env string) string {
	if env = strings.TrimSpace(env); env != "" {
		return strings.ToUpper(env)
	}
	return DefaultEnv
}
