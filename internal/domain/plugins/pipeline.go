package plugins

import (
	"fmt"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// DataFlowEntity describes pipelines (Airflow DAGs, Spark apps, ...).
type DataFlowEntity struct {
	base
}

// NewDataFlowEntity creates the data flow plugin.
func NewDataFlowEntity() *DataFlowEntity {
	return &DataFlowEntity{base{
		typ:        entities.EntityTypeDataFlow,
		path:       "pipelines",
		collection: "Pipelines",
		name:       "Pipeline",
		icon:       "PartitionOutlined",
		search:     true,
		browse:     true,
		lineage:    true,
	}}
}

func (p *DataFlowEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e),
		fact("Orchestrator", e.Platform),
		fact("Environment", e.Property(entities.PropEnv)),
	)
}

// BuildKey returns (<orchestrator>,<flow id>,<env>).
func (p *DataFlowEntity) BuildKey(in registry.KeyInput) (string, error) {
	if err := requireField("platform", in.Platform); err != nil {
		return "", err
	}
	id := firstNonEmpty(in.ID, in.Name)
	if err := requireField("id", id); err != nil {
		return "", err
	}
	return "(" + platformName(in.Platform) + "," + id + "," + envOrDefault(in.Env) + ")", nil
}

// DataJobEntity describes a single task inside a pipeline.
type DataJobEntity struct {
	base
}

// NewDataJobEntity creates the data job plugin.
func NewDataJobEntity() *DataJobEntity {
	return &DataJobEntity{base{
		typ:        entities.EntityTypeDataJob,
		path:       "tasks",
		collection: "Tasks",
		name:       "Task",
		icon:       "ConsoleSqlOutlined",
		search:     true,
		browse:     true,
		lineage:    true,
	}}
}

func (p *DataJobEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e), fact("Pipeline", string(e.ParentURN)))
}

// BuildKey returns (<data flow urn>,<job id>). The parent must be a data flow.
func (p *DataJobEntity) BuildKey(in registry.KeyInput) (string, error) {
	if in.ParentURN.EntityType() != entities.EntityTypeDataFlow {
		return "", entities.NewValidationError("parent", fmt.Sprintf("task parent must be a %s urn, got %q", entities.EntityTypeDataFlow, in.ParentURN))
	}
	id := firstNonEmpty(in.ID, in.Name)
	if err := requireField("id", id); err != nil {
		return "", err
	}
	return "(" + string(in.ParentURN) + "," + id + ")", nil
}
