package plugins

import (
	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// GlossaryTermEntity describes business glossary terms.
type GlossaryTermEntity struct {
	base
}

// NewGlossaryTermEntity creates the glossary term plugin.
func NewGlossaryTermEntity() *GlossaryTermEntity {
	return &GlossaryTermEntity{base{
		typ:        entities.EntityTypeGlossaryTerm,
		path:       "glossaryTerm",
		collection: "Glossary Terms",
		name:       "Glossary Term",
		icon:       "BookOutlined",
		search:     true,
	}}
}

func (p *GlossaryTermEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e),
		fact("Term group", string(e.ParentURN)),
		fact("Source", e.Property(entities.PropTermSource)),
	)
}

// GlossaryNodeEntity describes term groups, which nest terms and other groups.
type GlossaryNodeEntity struct {
	base
}

// NewGlossaryNodeEntity creates the glossary node plugin.
func NewGlossaryNodeEntity() *GlossaryNodeEntity {
	return &GlossaryNodeEntity{base{
		typ:        entities.EntityTypeGlossaryNode,
		path:       "glossaryNode",
		collection: "Term Groups",
		name:       "Term Group",
		icon:       "FolderOutlined",
	}}
}

func (p *GlossaryNodeEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e), fact("Parent group", string(e.ParentURN)))
}
