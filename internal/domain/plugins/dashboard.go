package plugins

import (
	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// DashboardEntity describes BI dashboards.
type DashboardEntity struct {
	base
}

// NewDashboardEntity creates the dashboard plugin.
func NewDashboardEntity() *DashboardEntity {
	return &DashboardEntity{base{
		typ:        entities.EntityTypeDashboard,
		path:       "dashboard",
		collection: "Dashboards",
		name:       "Dashboard",
		icon:       "LayoutOutlined",
		search:     true,
		browse:     true,
		lineage:    true,
	}}
}

func (p *DashboardEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e), fact("Platform", e.Platform))
}

// BuildKey returns (<platform>,<id>).
func (p *DashboardEntity) BuildKey(in registry.KeyInput) (string, error) {
	return toolKey(in)
}

// ChartEntity describes single visualizations, usually part of a dashboard.
type ChartEntity struct {
	base
}

// NewChartEntity creates the chart plugin.
func NewChartEntity() *ChartEntity {
	return &ChartEntity{base{
		typ:        entities.EntityTypeChart,
		path:       "chart",
		collection: "Charts",
		name:       "Chart",
		icon:       "LineChartOutlined",
		search:     true,
		browse:     true,
		lineage:    true,
	}}
}

func (p *ChartEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e),
		fact("Platform", e.Platform),
		fact("Dashboard", string(e.ParentURN)),
	)
}

// BuildKey returns (<platform>,<id>).
func (p *ChartEntity) BuildKey(in registry.KeyInput) (string, error) {
	return toolKey(in)
}

// toolKey builds the key shared by BI tool objects. The tool's own id wins
// over the name when both are given.
func toolKey(in registry.KeyInput) (string, error) {
	if err := requireField("platform", in.Platform); err != nil {
		return "", err
	}
	id := firstNonEmpty(in.ID, in.Name)
	if err := requireField("id", id); err != nil {
		return "", err
	}
	return "(" + platformName(in.Platform) + "," + id + ")", nil
}
