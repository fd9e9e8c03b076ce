package plugins

import "github.com/ersonp/catalog-core/internal/domain/registry"

// Defaults returns a fresh plugin for every entity type, in the order the
// catalog registers them. Menus and facets rely on this order.
func Defaults() []registry.Plugin {
	return []registry.Plugin{
		NewDatasetEntity(),
		NewDashboardEntity(),
		NewChartEntity(),
		NewUserEntity(),
		NewGroupEntity(),
		NewTagEntity(),
		NewDataFlowEntity(),
		NewDataJobEntity(),
		NewGlossaryTermEntity(),
		NewMLFeatureEntity(),
		NewMLPrimaryKeyEntity(),
		NewMLFeatureTableEntity(),
		NewMLModelEntity(),
		NewMLModelGroupEntity(),
		NewDomainEntity(),
		NewContainerEntity(),
		NewGlossaryNodeEntity(),
		NewDataPlatformEntity(),
		NewDataProductEntity(),
	}
}

// NewRegistry returns a frozen registry holding the default plugins.
func NewRegistry() (*registry.Registry, error) {
	reg := registry.New()
	for _, p := range Defaults() {
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	reg.Freeze()
	return reg, nil
}
