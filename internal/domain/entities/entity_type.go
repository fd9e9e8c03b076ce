// Package entities contains core domain data structures.
package entities

import "strings"

// EntityType identifies one of the catalog object categories.
// The set is closed: plugins exist for each value and nothing else.
type EntityType string

const (
	EntityTypeDataset        EntityType = "dataset"
	EntityTypeDashboard      EntityType = "dashboard"
	EntityTypeChart          EntityType = "chart"
	EntityTypeCorpUser       EntityType = "corpuser"
	EntityTypeCorpGroup      EntityType = "corpGroup"
	EntityTypeTag            EntityType = "tag"
	EntityTypeDataFlow       EntityType = "dataFlow"
	EntityTypeDataJob        EntityType = "dataJob"
	EntityTypeGlossaryTerm   EntityType = "glossaryTerm"
	EntityTypeMLFeature      EntityType = "mlFeature"
	EntityTypeMLPrimaryKey   EntityType = "mlPrimaryKey"
	EntityTypeMLFeatureTable EntityType = "mlFeatureTable"
	EntityTypeMLModel        EntityType = "mlModel"
	EntityTypeMLModelGroup   EntityType = "mlModelGroup"
	EntityTypeDomain         EntityType = "domain"
	EntityTypeContainer      EntityType = "container"
	EntityTypeGlossaryNode   EntityType = "glossaryNode"
	EntityTypeDataPlatform   EntityType = "dataPlatform"
	EntityTypeDataProduct    EntityType = "dataProduct"
)

var allEntityTypes = []EntityType{
	EntityTypeDataset,
	EntityTypeDashboard,
	EntityTypeChart,
	EntityTypeCorpUser,
	EntityTypeCorpGroup,
	EntityTypeTag,
	EntityTypeDataFlow,
	EntityTypeDataJob,
	EntityTypeGlossaryTerm,
	EntityTypeMLFeature,
	EntityTypeMLPrimaryKey,
	EntityTypeMLFeatureTable,
	EntityTypeMLModel,
	EntityTypeMLModelGroup,
	EntityTypeDomain,
	EntityTypeContainer,
	EntityTypeGlossaryNode,
	EntityTypeDataPlatform,
	EntityTypeDataProduct,
}

// lookup is keyed by the lowercased type name.
var entityTypesByLower = func() map[string]EntityType {
	m := make(map[string]EntityType, len(allEntityTypes))
	for _, t := range allEntityTypes {
		m[strings.ToLower(string(t))] = t
	}
	return m
}()

// AllEntityTypes returns every known entity type.
func AllEntityTypes() []EntityType {
	out := make([]EntityType, len(allEntityTypes))
	copy(out, allEntityTypes)
	return out
}

// IsValid reports whether t is one of the known entity types.
func (t EntityType) IsValid() bool {
	canonical, ok := entityTypesByLower[strings.ToLower(string(t))]
	return ok && canonical == t
}

// String returns the type name.
func (t EntityType) String() string {
	return string(t)
}

// ParseEntityType resolves a type name case-insensitively.
func ParseEntityType(s string) (EntityType, bool) {
	t, ok := entityTypesByLower[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}
