package registry

import "github.com/ersonp/catalog-core/internal/domain/entities"

// Plugin describes one entity type to the rest of the catalog.
type Plugin interface {
	// Type is the entity type this plugin handles.
	Type() entities.EntityType

	// PathName is the URL path segment for the type, e.g. "dataset" or "user".
	PathName() string

	// CollectionName is the plural label, e.g. "Datasets".
	CollectionName() string

	// EntityName is the singular label, e.g. "Dataset".
	EntityName() string

	// Icon names the icon shown next to entities of this type.
	Icon() string

	IsSearchEnabled() bool
	IsBrowseEnabled() bool
	IsLineageEnabled() bool

	// DisplayName returns the human readable name of e.
	DisplayName(e *entities.Entity) string

	// RenderPreview builds the summary card for e.
	RenderPreview(e *entities.Entity) Preview
}

// KeyInput carries the fields a KeyBuilder may derive a URN key from.
type KeyInput struct {
	ID        string
	Name      string
	Platform  string
	Env       string
	ParentURN entities.URN
}

// KeyBuilder is implemented by plugins whose URN keys are derived from
// the entity's attributes rather than a free-form id.
type KeyBuilder interface {
	BuildKey(in KeyInput) (string, error)
}

// Preview is the type-independent summary of an entity.
type Preview struct {
	Type        entities.EntityType `json:"type"`
	URN         entities.URN        `json:"urn"`
	Title       string              `json:"title"`
	Subtitle    string              `json:"subtitle,omitempty"`
	Description string              `json:"description,omitempty"`
	Icon        string              `json:"icon,omitempty"`
	URL         string              `json:"url,omitempty"`
	Facts       []PreviewFact       `json:"facts,omitempty"`
}

// PreviewFact is a labelled value shown on a preview card.
type PreviewFact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
