package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/plugins"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := plugins.NewRegistry()
	require.NoError(t, err)
	return reg
}

func TestEntityTypeHandler_HandleList(t *testing.T) {
	handler := NewEntityTypeHandler(newTestRegistry(t))

	types := handler.HandleList()

	require.Len(t, types, len(entities.AllEntityTypes()))
	assert.Equal(t, entities.EntityTypeDataset, types[0].Type)
	assert.Equal(t, "Datasets", types[0].CollectionName)
	assert.True(t, types[0].Search)
	assert.True(t, types[0].Lineage)
	assert.True(t, types[0].DerivedKey)
}

func TestEntityTypeHandler_HandleDescribe(t *testing.T) {
	handler := NewEntityTypeHandler(newTestRegistry(t))

	byPath, err := handler.HandleDescribe("tasks")
	require.NoError(t, err)
	assert.Equal(t, entities.EntityTypeDataJob, byPath.Type)

	byType, err := handler.HandleDescribe("tag")
	require.NoError(t, err)
	assert.Equal(t, "tag", byType.PathName)
	assert.False(t, byType.Lineage)
	assert.False(t, byType.DerivedKey)

	_, err = handler.HandleDescribe("notebook")
	assert.ErrorIs(t, err, registry.ErrUnknownEntityType)
}
