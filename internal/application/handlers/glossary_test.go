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

func newTestGlossaryHandler(t *testing.T, actor entities.Actor) (*GlossaryHandler, *mocks.CatalogDB) {
	t.Helper()
	db := mocks.NewCatalogDB()
	logger := zerolog.Nop()
	ownershipTypes := services.NewOwnershipTypeService(db, logger)
	require.NoError(t, ownershipTypes.LoadDefaults(t.Context()))
	entitySvc := services.NewEntityService(db, newTestRegistry(t), logger)
	return NewGlossaryHandler(services.NewGlossaryService(entitySvc, db, ownershipTypes, logger), actor), db
}

func TestGlossaryHandler_CreateNodeAndTerm(t *testing.T) {
	handler, db := newTestGlossaryHandler(t, entities.Actor{URN: "urn:li:corpuser:datahub", CanManageGlossaries: true})

	node, err := handler.HandleCreateNode(t.Context(), GlossaryRequest{ID: "finance", Name: "Finance"})
	require.NoError(t, err)

	term, err := handler.HandleCreateTerm(t.Context(), GlossaryRequest{
		ID:          "revenue",
		Name:        "Revenue",
		Description: "Money in",
		Parent:      string(node.URN),
	})
	require.NoError(t, err)

	assert.Equal(t, node.URN, term.ParentURN)
	assert.Equal(t, "Money in", term.Description)
	assert.Len(t, db.Entities, 2)
	assert.Equal(t, entities.URN("urn:li:corpuser:datahub"), db.Owners[term.URN][0].OwnerURN)
}

func TestGlossaryHandler_Unauthorized(t *testing.T) {
	handler, db := newTestGlossaryHandler(t, entities.Actor{URN: "urn:li:corpuser:guest"})

	_, err := handler.HandleCreateTerm(t.Context(), GlossaryRequest{ID: "revenue"})

	assert.ErrorIs(t, err, entities.ErrUnauthorized)
	assert.Empty(t, db.Entities)
}
