package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/mocks"
)

func TestOwnershipTypeService_LoadDefaults(t *testing.T) {
	db := mocks.NewCatalogDB()
	service := NewOwnershipTypeService(db, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, service.LoadDefaults(ctx))
	require.NoError(t, service.LoadDefaults(ctx))

	types, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, types, len(entities.DefaultOwnershipTypes))
	for _, name := range entities.DefaultOwnershipTypeNames() {
		assert.True(t, service.Exists(ctx, name), name)
	}
}

func TestOwnershipTypeService_LoadDefaults_KeepsExisting(t *testing.T) {
	db := mocks.NewCatalogDB()
	db.OwnershipTypes[entities.OwnershipNone] = &entities.OwnershipType{Name: entities.OwnershipNone, Description: "custom"}
	service := NewOwnershipTypeService(db, zerolog.Nop())

	require.NoError(t, service.LoadDefaults(context.Background()))

	assert.Equal(t, "custom", db.OwnershipTypes[entities.OwnershipNone].Description)
}

func TestOwnershipTypeService_Add(t *testing.T) {
	service := NewOwnershipTypeService(mocks.NewCatalogDB(), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, service.Add(ctx, " data_consumer ", "Reads the asset"))

	ot, err := service.Get(ctx, "DATA_CONSUMER")
	require.NoError(t, err)
	assert.Equal(t, "Reads the asset", ot.Description)
	assert.True(t, service.Exists(ctx, "data_consumer"))

	err = service.Add(ctx, "DATA_CONSUMER", "again")
	assert.True(t, entities.IsAlreadyExists(err))
}

func TestOwnershipTypeService_Add_InvalidName(t *testing.T) {
	service := NewOwnershipTypeService(mocks.NewCatalogDB(), zerolog.Nop())

	for _, name := range []string{"", "1OWNER", "DATA-OWNER", "DATA OWNER"} {
		err := service.Add(context.Background(), name, "")
		assert.ErrorIs(t, err, entities.ErrInvalidInput, name)
	}
}

func TestOwnershipTypeService_Remove(t *testing.T) {
	service := NewOwnershipTypeService(mocks.NewCatalogDB(), zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, service.LoadDefaults(ctx))
	require.NoError(t, service.Add(ctx, "AUDITOR", ""))
	assert.True(t, service.Exists(ctx, "AUDITOR"))

	require.NoError(t, service.Remove(ctx, "auditor"))
	assert.False(t, service.Exists(ctx, "AUDITOR"))

	err := service.Remove(ctx, "AUDITOR")
	assert.True(t, entities.IsNotFound(err))

	err = service.Remove(ctx, entities.OwnershipTechnicalOwner)
	assert.ErrorIs(t, err, entities.ErrInvalidInput)
	assert.True(t, service.Exists(ctx, entities.OwnershipTechnicalOwner))
}

func TestOwnershipTypeService_Get_NotFound(t *testing.T) {
	service := NewOwnershipTypeService(mocks.NewCatalogDB(), zerolog.Nop())

	_, err := service.Get(context.Background(), "NOPE")

	assert.True(t, entities.IsNotFound(err))
}

func TestOwnershipTypeService_Exists_DBError(t *testing.T) {
	db := mocks.NewCatalogDB()
	db.Err = errors.New("db down")
	service := NewOwnershipTypeService(db, zerolog.Nop())

	assert.False(t, service.Exists(context.Background(), entities.OwnershipNone))
}

func TestOwnershipTypeService_Exists_Concurrent(t *testing.T) {
	db := mocks.NewCatalogDB()
	service := NewOwnershipTypeService(db, zerolog.Nop())
	require.NoError(t, service.LoadDefaults(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, service.Exists(context.Background(), entities.OwnershipBusinessOwner))
		}()
	}
	wg.Wait()
}
