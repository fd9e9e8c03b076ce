package plugins

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

func TestNewRegistry_RegistersEveryTypeInOrder(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	assert.True(t, reg.Frozen())
	require.Equal(t, len(entities.AllEntityTypes()), reg.Len())

	var got []entities.EntityType
	for _, p := range reg.GetEntities() {
		got = append(got, p.Type())
	}
	assert.Equal(t, entities.AllEntityTypes(), got)
}

func TestNewRegistry_FreshInstances(t *testing.T) {
	a, err := NewRegistry()
	require.NoError(t, err)
	b, err := NewRegistry()
	require.NoError(t, err)

	pa, err := a.GetEntity(entities.EntityTypeDataset)
	require.NoError(t, err)
	pb, err := b.GetEntity(entities.EntityTypeDataset)
	require.NoError(t, err)
	assert.NotSame(t, pa, pb)
}

func TestDefaults_PathNamesAreUnique(t *testing.T) {
	seen := make(map[string]entities.EntityType)
	for _, p := range Defaults() {
		key := strings.ToLower(p.PathName())
		if prev, ok := seen[key]; ok {
			t.Fatalf("path %q used by both %s and %s", p.PathName(), prev, p.Type())
		}
		seen[key] = p.Type()
		assert.NotEmpty(t, p.CollectionName(), p.Type())
		assert.NotEmpty(t, p.EntityName(), p.Type())
		assert.NotEmpty(t, p.Icon(), p.Type())
	}
}

func TestDefaults_Capabilities(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	search := reg.GetSearchEntityTypes()
	assert.NotContains(t, search, entities.EntityTypeGlossaryNode)
	assert.NotContains(t, search, entities.EntityTypeDataPlatform)
	assert.Len(t, search, 17)

	def, err := reg.GetDefaultSearchEntityType()
	require.NoError(t, err)
	assert.Equal(t, entities.EntityTypeDataset, def)

	assert.Equal(t, []entities.EntityType{
		entities.EntityTypeDataset,
		entities.EntityTypeDashboard,
		entities.EntityTypeChart,
		entities.EntityTypeDataFlow,
		entities.EntityTypeDataJob,
		entities.EntityTypeMLFeature,
		entities.EntityTypeMLPrimaryKey,
		entities.EntityTypeMLFeatureTable,
		entities.EntityTypeMLModel,
		entities.EntityTypeMLModelGroup,
	}, reg.GetLineageEntityTypes())

	assert.Contains(t, reg.GetBrowseEntityTypes(), entities.EntityTypeMLModel)
	assert.NotContains(t, reg.GetBrowseEntityTypes(), entities.EntityTypeMLFeature)
}

func TestDefaults_PathLookup(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	tests := map[string]entities.EntityType{
		"dataset":   entities.EntityTypeDataset,
		"user":      entities.EntityTypeCorpUser,
		"group":     entities.EntityTypeCorpGroup,
		"pipelines": entities.EntityTypeDataFlow,
		"tasks":     entities.EntityTypeDataJob,
		"features":  entities.EntityTypeMLFeature,
		"platform":  entities.EntityTypeDataPlatform,
	}
	for path, want := range tests {
		got, err := reg.GetTypeFromPathName(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}

func TestDatasetEntity_BuildKey(t *testing.T) {
	p := NewDatasetEntity()

	key, err := p.BuildKey(registry.KeyInput{Platform: "Hive", Name: "db.orders"})
	require.NoError(t, err)
	assert.Equal(t, "(urn:li:dataPlatform:hive,db.orders,PROD)", key)

	key, err = p.BuildKey(registry.KeyInput{Platform: "urn:li:dataPlatform:snowflake", Name: "sales.orders", Env: "dev"})
	require.NoError(t, err)
	assert.Equal(t, "(urn:li:dataPlatform:snowflake,sales.orders,DEV)", key)

	_, err = p.BuildKey(registry.KeyInput{Name: "orders"})
	assert.True(t, errors.Is(err, entities.ErrInvalidInput))
}

func TestDatasetEntity_DisplayNameFallsBackToURN(t *testing.T) {
	p := NewDatasetEntity()
	urn := entities.NewURN(entities.EntityTypeDataset, "(urn:li:dataPlatform:hive,db.orders,PROD)")

	assert.Equal(t, "db.orders", p.DisplayName(&entities.Entity{URN: urn}))
	assert.Equal(t, "orders", p.DisplayName(&entities.Entity{URN: urn, Name: "orders"}))
}

func TestDatasetEntity_RenderPreview(t *testing.T) {
	p := NewDatasetEntity()
	e := &entities.Entity{
		URN:         entities.NewURN(entities.EntityTypeDataset, "(urn:li:dataPlatform:hive,db.orders,PROD)"),
		Type:        entities.EntityTypeDataset,
		Name:        "orders",
		Platform:    "hive",
		Description: strings.Repeat("a", 200),
		Properties:  map[string]string{entities.PropEnv: "PROD"},
	}

	preview := p.RenderPreview(e)
	assert.Equal(t, "orders", preview.Title)
	assert.Equal(t, "Dataset · hive", preview.Subtitle)
	assert.Equal(t, "TableOutlined", preview.Icon)
	assert.Len(t, []rune(preview.Description), maxPreviewDescription)
	assert.True(t, strings.HasSuffix(preview.Description, "..."))
	assert.Equal(t, []registry.PreviewFact{
		{Label: "Platform", Value: "hive"},
		{Label: "Environment", Value: "PROD"},
	}, preview.Facts)
}

func TestUserEntity_DisplayName(t *testing.T) {
	p := NewUserEntity()
	urn := entities.NewURN(entities.EntityTypeCorpUser, "jdoe")

	assert.Equal(t, "jdoe", p.DisplayName(&entities.Entity{URN: urn}))
	assert.Equal(t, "Jane Doe", p.DisplayName(&entities.Entity{
		URN:        urn,
		Name:       "jdoe",
		Properties: map[string]string{entities.PropFullName: "Jane Doe"},
	}))
	assert.Equal(t, "Jane", p.DisplayName(&entities.Entity{
		URN: urn,
		Properties: map[string]string{
			entities.PropFullName:    "Jane Doe",
			entities.PropDisplayName: "Jane",
		},
	}))
}

func TestToolKey(t *testing.T) {
	key, err := NewDashboardEntity().BuildKey(registry.KeyInput{Platform: "Looker", ID: "42", Name: "Revenue"})
	require.NoError(t, err)
	assert.Equal(t, "(looker,42)", key)

	key, err = NewChartEntity().BuildKey(registry.KeyInput{Platform: "looker", Name: "revenue_by_day"})
	require.NoError(t, err)
	assert.Equal(t, "(looker,revenue_by_day)", key)
}

func TestDataJobEntity_BuildKey(t *testing.T) {
	flowKey, err := NewDataFlowEntity().BuildKey(registry.KeyInput{Platform: "airflow", ID: "daily_etl"})
	require.NoError(t, err)
	assert.Equal(t, "(airflow,daily_etl,PROD)", flowKey)

	flow := entities.NewURN(entities.EntityTypeDataFlow, flowKey)
	key, err := NewDataJobEntity().BuildKey(registry.KeyInput{ID: "load_orders", ParentURN: flow})
	require.NoError(t, err)
	assert.Equal(t, "(urn:li:dataFlow:(airflow,daily_etl,PROD),load_orders)", key)

	_, err = NewDataJobEntity().BuildKey(registry.KeyInput{ID: "load_orders", ParentURN: "urn:li:dataset:x"})
	assert.True(t, errors.Is(err, entities.ErrInvalidInput))
}

func TestDataPlatformEntity_BuildKey(t *testing.T) {
	key, err := NewDataPlatformEntity().BuildKey(registry.KeyInput{Name: "Snowflake"})
	require.NoError(t, err)
	assert.Equal(t, "snowflake", key)
}

func TestGlossaryTermEntity_RenderPreviewDropsEmptyFacts(t *testing.T) {
	e := &entities.Entity{
		URN:  entities.NewURN(entities.EntityTypeGlossaryTerm, "pii"),
		Type: entities.EntityTypeGlossaryTerm,
		Name: "PII",
		Properties: map[string]string{
			entities.PropTermSource: "INTERNAL",
		},
	}

	preview := NewGlossaryTermEntity().RenderPreview(e)
	assert.Equal(t, "PII", preview.Title)
	assert.Equal(t, "Glossary Term", preview.Subtitle)
	assert.Equal(t, []registry.PreviewFact{{Label: "Source", Value: "INTERNAL"}}, preview.Facts)
}
