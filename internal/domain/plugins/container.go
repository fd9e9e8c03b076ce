package plugins

import (
	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// ContainerEntity describes databases, schemas, folders and similar holders of datasets.
type ContainerEntity struct {
	base
}

// NewContainerEntity creates the container plugin.
func NewContainerEntity() *ContainerEntity {
	return &ContainerEntity{base{
		typ:        entities.EntityTypeContainer,
		path:       "container",
		collection: "Containers",
		name:       "Container",
		icon:       "FolderOpenOutlined",
		search:     true,
	}}
}

func (p *ContainerEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e),
		fact("Platform", e.Platform),
		fact("Subtype", e.Property("subType")),
		fact("Parent", string(e.ParentURN)),
	)
}
