package plugins

import (
	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// DatasetEntity describes tables, views, topics and files.
type DatasetEntity struct {
	base
}

// NewDatasetEntity creates the dataset plugin.
func NewDatasetEntity() *DatasetEntity {
	return &DatasetEntity{base{
		typ:        entities.EntityTypeDataset,
		path:       "dataset",
		collection: "Datasets",
		name:       "Dataset",
		icon:       "TableOutlined",
		search:     true,
		browse:     true,
		lineage:    true,
	}}
}

// DisplayName prefers the qualified name over the bare name.
func (p *DatasetEntity) DisplayName(e *entities.Entity) string {
	return firstNonEmpty(e.Property(entities.PropDisplayName), e.Name, e.Property(entities.PropQualifiedName), datasetNameFromURN(e.URN))
}

// RenderPreview shows the platform and environment of the dataset.
func (p *DatasetEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e),
		fact("Platform", e.Platform),
		fact("Environment", e.Property(entities.PropEnv)),
		fact("Qualified name", e.Property(entities.PropQualifiedName)),
	)
}

// BuildKey returns (urn:li:dataPlatform:<platform>,<name>,<env>).
func (p *DatasetEntity) BuildKey(in registry.KeyInput) (string, error) {
	if err := requireField("platform", in.Platform); err != nil {
		return "", err
	}
	if err := requireField("name", in.Name); err != nil {
		return "", err
	}
	platformURN := entities.NewURN(entities.EntityTypeDataPlatform, platformName(in.Platform))
	return "(" + string(platformURN) + "," + in.Name + "," + envOrDefault(in.Env) + ")", nil
}

// datasetNameFromURN extracts the name part of a dataset key.
func datasetNameFromURN(urn entities.URN) string {
	parts := urn.TupleParts()
	if len(parts) == 3 {
		return parts[1]
	}
	return urn.Key()
}
