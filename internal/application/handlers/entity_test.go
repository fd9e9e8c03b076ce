package handlers

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/mocks"
	"github.com/ersonp/catalog-core/internal/domain/services"
)

type entityFixture struct {
	handler *EntityHandler
	db      *mocks.CatalogDB
	index   *mocks.SearchIndex
}

func newEntityFixture(t *testing.T) *entityFixture {
	t.Helper()
	reg := newTestRegistry(t)
	db := mocks.NewCatalogDB()
	index := mocks.NewSearchIndex()
	embedder := &mocks.Embedder{EmbeddingResult: []float32{0.1, 0.2}}
	entitySvc := services.NewEntityService(db, reg, zerolog.Nop())
	searchSvc := services.NewSearchService(embedder, index, db, reg, zerolog.Nop())
	return &entityFixture{
		handler: NewEntityHandler(entitySvc, searchSvc, reg),
		db:      db,
		index:   index,
	}
}

func TestEntityHandler_HandleCreate_IndexesEntity(t *testing.T) {
	f := newEntityFixture(t)

	e, err := f.handler.HandleCreate(t.Context(), CreateEntityRequest{
		Type:     "dataset",
		Name:     "db.orders",
		Platform: "hive",
	})

	require.NoError(t, err)
	assert.Contains(t, f.db.Entities, e.URN)
	assert.Contains(t, f.index.Docs, e.URN)
}

func TestEntityHandler_HandleCreate_ByPathName(t *testing.T) {
	f := newEntityFixture(t)

	e, err := f.handler.HandleCreate(t.Context(), CreateEntityRequest{Type: "user", ID: "jdoe", Name: "jdoe"})

	require.NoError(t, err)
	assert.Equal(t, entities.URN("urn:li:corpuser:jdoe"), e.URN)
}

func TestEntityHandler_HandleCreate_IndexError(t *testing.T) {
	f := newEntityFixture(t)
	f.index.Err = errors.New("qdrant unavailable")

	e, err := f.handler.HandleCreate(t.Context(), CreateEntityRequest{Type: "tag", ID: "pii", Name: "PII"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "saved but not indexed")
	require.NotNil(t, e)
	assert.Contains(t, f.db.Entities, e.URN)
}

func TestEntityHandler_HandleGet(t *testing.T) {
	f := newEntityFixture(t)
	_, err := f.handler.HandleCreate(t.Context(), CreateEntityRequest{Type: "tag", ID: "pii", Name: "PII"})
	require.NoError(t, err)

	details, err := f.handler.HandleGet(t.Context(), "urn:li:tag:pii")
	require.NoError(t, err)
	assert.Equal(t, "PII", details.DisplayName)
	assert.Equal(t, "/tag/urn:li:tag:pii", details.URL)

	_, err = f.handler.HandleGet(t.Context(), "tag:pii")
	assert.ErrorIs(t, err, entities.ErrInvalidInput)
}

func TestEntityHandler_HandleList(t *testing.T) {
	f := newEntityFixture(t)
	for _, id := range []string{"a", "b", "c"} {
		_, err := f.handler.HandleCreate(t.Context(), CreateEntityRequest{Type: "tag", ID: id, Name: id})
		require.NoError(t, err)
	}

	result, err := f.handler.HandleList(t.Context(), "tag", 2, 0)

	require.NoError(t, err)
	assert.Len(t, result.Entities, 2)
	assert.Equal(t, 3, result.Total)
}

func TestEntityHandler_HandleSearch(t *testing.T) {
	f := newEntityFixture(t)
	_, err := f.handler.HandleCreate(t.Context(), CreateEntityRequest{Type: "tag", ID: "orders", Name: "Orders"})
	require.NoError(t, err)
	_, err = f.handler.HandleCreate(t.Context(), CreateEntityRequest{Type: "domain", ID: "orders", Name: "Orders"})
	require.NoError(t, err)

	result, err := f.handler.HandleSearch(t.Context(), "order", []string{"domain"}, 10)

	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, entities.EntityTypeDomain, result.Entities[0].Type)

	_, err = f.handler.HandleSearch(t.Context(), "order", []string{"notebook"}, 10)
	assert.Error(t, err)
}

func TestEntityHandler_HandleDelete(t *testing.T) {
	f := newEntityFixture(t)
	e, err := f.handler.HandleCreate(t.Context(), CreateEntityRequest{Type: "tag", ID: "pii", Name: "PII"})
	require.NoError(t, err)
	require.Contains(t, f.index.Docs, e.URN)

	require.NoError(t, f.handler.HandleDelete(t.Context(), string(e.URN)))

	assert.Empty(t, f.db.Entities)
	assert.NotContains(t, f.index.Docs, e.URN)

	count, err := f.handler.HandleCount(t.Context(), "")
	require.NoError(t, err)
	assert.Zero(t, count)
}
