package handlers

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/mocks"
	"github.com/ersonp/catalog-core/internal/domain/services"
)

const (
	flowURN = "urn:li:dataFlow:(airflow,daily_etl,PROD)"
	jobURN  = "urn:li:dataJob:(urn:li:dataFlow:(airflow,daily_etl,PROD),load_orders)"
	dsURN   = "urn:li:dataset:(urn:li:dataPlatform:hive,db.orders,PROD)"
)

func newTestLineageHandler(t *testing.T) (*LineageHandler, *mocks.CatalogDB) {
	t.Helper()
	db := mocks.NewCatalogDB()
	for urn, typ := range map[entities.URN]entities.EntityType{
		flowURN: entities.EntityTypeDataFlow,
		jobURN:  entities.EntityTypeDataJob,
		dsURN:   entities.EntityTypeDataset,
	} {
		db.Entities[urn] = &entities.Entity{URN: urn, Type: typ, Name: string(typ)}
	}
	svc := services.NewLineageService(db, newTestRegistry(t), zerolog.Nop())
	return NewLineageHandler(svc, db), db
}

func TestLineageHandler_HandleCreate(t *testing.T) {
	handler, db := newTestLineageHandler(t)

	edge, err := handler.HandleCreate(t.Context(), jobURN, "produces", dsURN)

	require.NoError(t, err)
	assert.Equal(t, entities.LineageProduces, edge.Type)
	assert.Len(t, db.Edges, 1)
}

func TestLineageHandler_HandleCreate_InvalidInput(t *testing.T) {
	handler, _ := newTestLineageHandler(t)

	_, err := handler.HandleCreate(t.Context(), jobURN, "feeds", dsURN)
	assert.ErrorIs(t, err, entities.ErrInvalidInput)
	assert.Contains(t, err.Error(), "DownstreamOf")

	_, err = handler.HandleCreate(t.Context(), "job", "produces", dsURN)
	assert.ErrorIs(t, err, entities.ErrInvalidInput)
}

func TestLineageHandler_HandleList(t *testing.T) {
	handler, _ := newTestLineageHandler(t)
	_, err := handler.HandleCreate(t.Context(), flowURN, "DownstreamOf", jobURN)
	require.NoError(t, err)
	_, err = handler.HandleCreate(t.Context(), jobURN, "Produces", dsURN)
	require.NoError(t, err)

	result, err := handler.HandleList(t.Context(), jobURN, LineageListOptions{})
	require.NoError(t, err)
	assert.Len(t, result.Edges, 2)
	assert.Equal(t, []entities.URN{flowURN}, result.Upstreams)
	assert.Equal(t, []entities.URN{dsURN}, result.Downstreams)
	for _, info := range result.Edges {
		assert.NotEmpty(t, info.UpstreamName)
		assert.NotEmpty(t, info.DownstreamName)
	}

	deep, err := handler.HandleList(t.Context(), flowURN, LineageListOptions{Depth: 3})
	require.NoError(t, err)
	assert.ElementsMatch(t, []entities.URN{jobURN, dsURN}, deep.Downstreams)
}

func TestLineageHandler_HandleDelete(t *testing.T) {
	handler, db := newTestLineageHandler(t)
	edge, err := handler.HandleCreate(t.Context(), jobURN, "Produces", dsURN)
	require.NoError(t, err)

	require.NoError(t, handler.HandleDelete(t.Context(), edge.ID))
	assert.Empty(t, db.Edges)
}
