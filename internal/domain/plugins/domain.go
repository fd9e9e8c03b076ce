package plugins

import (
	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// DomainEntity describes business domains that group assets.
type DomainEntity struct {
	base
}

// NewDomainEntity creates the domain plugin.
func NewDomainEntity() *DomainEntity {
	return &DomainEntity{base{
		typ:        entities.EntityTypeDomain,
		path:       "domain",
		collection: "Domains",
		name:       "Domain",
		icon:       "GlobalOutlined",
		search:     true,
	}}
}

func (p *DomainEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e), fact("Parent domain", string(e.ParentURN)))
}

// DataProductEntity describes a curated bundle of assets owned by a domain.
type DataProductEntity struct {
	base
}

// NewDataProductEntity creates the data product plugin.
func NewDataProductEntity() *DataProductEntity {
	return &DataProductEntity{base{
		typ:        entities.EntityTypeDataProduct,
		path:       "dataProduct",
		collection: "Data Products",
		name:       "Data Product",
		icon:       "FileDoneOutlined",
		search:     true,
	}}
}

func (p *DataProductEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e), fact("Domain", string(e.ParentURN)))
}
