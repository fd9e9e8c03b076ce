package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	embedder "github.com/ersonp/catalog-core/internal/infrastructure/embedder/openai"
)

const (
	ordersURN  = entities.URN("urn:li:dataset:(urn:li:dataPlatform:snowflake,sales.orders,PROD)")
	revenueURN = entities.URN("urn:li:dashboard:(looker,revenue)")
	piiURN     = entities.URN("urn:li:tag:PII")
)

func testDocs() []entities.SearchDocument {
	return []entities.SearchDocument{
		{URN: ordersURN, Type: entities.EntityTypeDataset, Name: "sales.orders", Text: "Dataset: sales.orders.", Embedding: axis(0)},
		{URN: revenueURN, Type: entities.EntityTypeDashboard, Name: "Revenue", Text: "Dashboard: Revenue.", Embedding: axis(1)},
		{URN: piiURN, Type: entities.EntityTypeTag, Name: "PII", Text: "Tag: PII.", Embedding: axis(2)},
	}
}

func TestCollectionLifecycle(t *testing.T) {
	ctx := t.Context()
	resetCollection(t)

	count, err := testRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	// EnsureCollection is idempotent
	err = testRepo.EnsureCollection(ctx, embedder.VectorSize)
	require.NoError(t, err)
}

func TestUpsertAndSearch(t *testing.T) {
	ctx := t.Context()
	resetCollection(t)

	require.NoError(t, testRepo.Upsert(ctx, testDocs()))

	hits, err := testRepo.Search(ctx, axis(1), nil, 3)
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	assert.Equal(t, revenueURN, hits[0].URN)
	assert.Equal(t, entities.EntityTypeDashboard, hits[0].Type)
	assert.Equal(t, "Revenue", hits[0].Name)
	assert.InDelta(t, 1.0, hits[0].Score, 0.001)
}

func TestSearch_TypeFilter(t *testing.T) {
	ctx := t.Context()
	resetCollection(t)

	require.NoError(t, testRepo.Upsert(ctx, testDocs()))

	hits, err := testRepo.Search(ctx, axis(1), []entities.EntityType{entities.EntityTypeDataset, entities.EntityTypeTag}, 10)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.NotEqual(t, entities.EntityTypeDashboard, h.Type)
	}
}

func TestUpsert_SameURNReplaces(t *testing.T) {
	ctx := t.Context()
	resetCollection(t)

	docs := testDocs()
	require.NoError(t, testRepo.Upsert(ctx, docs))

	docs[0].Name = "sales.orders_v2"
	require.NoError(t, testRepo.Upsert(ctx, docs[:1]))

	count, err := testRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	hits, err := testRepo.Search(ctx, axis(0), []entities.EntityType{entities.EntityTypeDataset}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "sales.orders_v2", hits[0].Name)
}

func TestDelete(t *testing.T) {
	ctx := t.Context()
	resetCollection(t)

	require.NoError(t, testRepo.Upsert(ctx, testDocs()))
	require.NoError(t, testRepo.Delete(ctx, piiURN))

	count, err := testRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	hits, err := testRepo.Search(ctx, axis(2), []entities.EntityType{entities.EntityTypeTag}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
