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

func TestOwnershipTypeHandler(t *testing.T) {
	svc := services.NewOwnershipTypeService(mocks.NewCatalogDB(), zerolog.Nop())
	require.NoError(t, svc.LoadDefaults(t.Context()))
	handler := NewOwnershipTypeHandler(svc)

	require.NoError(t, handler.HandleAdd(t.Context(), "auditor", "Reviews access"))

	types, err := handler.HandleList(t.Context())
	require.NoError(t, err)
	assert.Len(t, types, len(entities.DefaultOwnershipTypes)+1)

	require.NoError(t, handler.HandleRemove(t.Context(), "AUDITOR"))
	assert.Error(t, handler.HandleRemove(t.Context(), entities.OwnershipDataSteward))
}
