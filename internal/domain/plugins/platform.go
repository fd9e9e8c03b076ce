package plugins

import (
	"strings"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// DataPlatformEntity describes source systems such as hive or snowflake.
// Platforms are referenced by other entities but are not searchable themselves.
type DataPlatformEntity struct {
	base
}

// NewDataPlatformEntity creates the data platform plugin.
func NewDataPlatformEntity() *DataPlatformEntity {
	return &DataPlatformEntity{base{
		typ:        entities.EntityTypeDataPlatform,
		path:       "platform",
		collection: "Data Platforms",
		name:       "Data Platform",
		icon:       "DatabaseOutlined",
	}}
}

func (p *DataPlatformEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e), fact("Type", e.Property("platformType")))
}

// BuildKey returns the lowercased platform name.
func (p *DataPlatformEntity) BuildKey(in registry.KeyInput) (string, error) {
	name := firstNonEmpty(in.ID, in.Name)
	if err := requireField("name", name); err != nil {
		return "", err
	}
	return strings.ToLower(name), nil
}
