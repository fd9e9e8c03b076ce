package plugins

import (
	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// TagEntity describes free-form labels attached to other entities.
type TagEntity struct {
	base
}

// NewTagEntity creates the tag plugin.
func NewTagEntity() *TagEntity {
	return &TagEntity{base{
		typ:        entities.EntityTypeTag,
		path:       "tag",
		collection: "Tags",
		name:       "Tag",
		icon:       "TagOutlined",
		search:     true,
	}}
}

func (p *TagEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e), fact("Color", e.Property("colorHex")))
}
