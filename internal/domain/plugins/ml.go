package plugins

import (
	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// MLFeatureEntity describes a single ML feature.
type MLFeatureEntity struct {
	base
}

func NewMLFeatureEntity() *MLFeatureEntity {
	return &MLFeatureEntity{base{
		typ:        entities.EntityTypeMLFeature,
		path:       "features",
		collection: "Features",
		name:       "Feature",
		icon:       "DotChartOutlined",
		search:     true,
		lineage:    true,
	}}
}

func (p *MLFeatureEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e),
		fact("Data type", e.Property("dataType")),
		fact("Feature table", string(e.ParentURN)),
	)
}

// MLPrimaryKeyEntity describes the key a feature table is joined on.
type MLPrimaryKeyEntity struct {
	base
}

func NewMLPrimaryKeyEntity() *MLPrimaryKeyEntity {
	return &MLPrimaryKeyEntity{base{
		typ:        entities.EntityTypeMLPrimaryKey,
		path:       "mlPrimaryKeys",
		collection: "ML Primary Keys",
		name:       "ML Primary Key",
		icon:       "KeyOutlined",
		search:     true,
		lineage:    true,
	}}
}

func (p *MLPrimaryKeyEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e), fact("Data type", e.Property("dataType")))
}

// MLFeatureTableEntity describes a collection of features.
type MLFeatureTableEntity struct {
	base
}

func NewMLFeatureTableEntity() *MLFeatureTableEntity {
	return &MLFeatureTableEntity{base{
		typ:        entities.EntityTypeMLFeatureTable,
		path:       "featureTables",
		collection: "Feature Tables",
		name:       "Feature Table",
		icon:       "DotChartOutlined",
		search:     true,
		browse:     true,
		lineage:    true,
	}}
}

func (p *MLFeatureTableEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e), fact("Platform", e.Platform))
}

// MLModelEntity describes a trained model.
type MLModelEntity struct {
	base
}

func NewMLModelEntity() *MLModelEntity {
	return &MLModelEntity{base{
		typ:        entities.EntityTypeMLModel,
		path:       "mlModels",
		collection: "ML Models",
		name:       "ML Model",
		icon:       "CodeSandboxOutlined",
		search:     true,
		browse:     true,
		lineage:    true,
	}}
}

func (p *MLModelEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e),
		fact("Platform", e.Platform),
		fact("Model group", string(e.ParentURN)),
	)
}

// MLModelGroupEntity describes a family of model versions.
type MLModelGroupEntity struct {
	base
}

func NewMLModelGroupEntity() *MLModelGroupEntity {
	return &MLModelGroupEntity{base{
		typ:        entities.EntityTypeMLModelGroup,
		path:       "mlModelGroup",
		collection: "ML Groups",
		name:       "ML Group",
		icon:       "GotoOutlined",
		search:     true,
		browse:     true,
		lineage:    true,
	}}
}

func (p *MLModelGroupEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e), fact("Platform", e.Platform))
}
