package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/mocks"
	"github.com/ersonp/catalog-core/internal/infrastructure/parsers"
)

func newTestImportService(t *testing.T) (*ImportService, *mocks.CatalogDB) {
	t.Helper()
	db := mocks.NewCatalogDB()
	reg := newTestRegistry(t)
	entitySvc := NewEntityService(db, reg, zerolog.Nop())
	return NewImportService(entitySvc, db, reg, zerolog.Nop()), db
}

func TestImportService_Import_ValidEntities(t *testing.T) {
	service, db := newTestImportService(t)
	raws := []parsers.RawEntity{
		{Type: "dataset", Name: "db.orders", Platform: "hive", LineNum: 2},
		{Type: "tag", ID: "pii", Name: "PII", Properties: map[string]string{"colorHex": "#ff0000"}, LineNum: 3},
	}

	result, err := service.Import(context.Background(), raws, ImportOptions{OnConflict: ConflictSkip})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Len(t, result.Entities, 2)
	assert.Contains(t, db.Entities, ordersURN)
	assert.Equal(t, "#ff0000", db.Entities["urn:li:tag:pii"].Property("colorHex"))
	assert.Equal(t, "import", db.Audit[0].Details["source"])
}

func TestImportService_Import_ResolvesPathNames(t *testing.T) {
	service, db := newTestImportService(t)
	raws := []parsers.RawEntity{
		{Type: "pipelines", ID: "daily_etl", Name: "Daily ETL", Platform: "airflow"},
		{Type: "CORPUSER", ID: "jdoe", Name: "Jane Doe"},
	}

	result, err := service.Import(context.Background(), raws, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Contains(t, db.Entities, entities.URN("urn:li:dataFlow:(airflow,daily_etl,PROD)"))
	assert.Contains(t, db.Entities, entities.URN("urn:li:corpuser:jdoe"))
}

func TestImportService_Import_RejectsGlossaryTypes(t *testing.T) {
	service, db := newTestImportService(t)
	raws := []parsers.RawEntity{
		{Type: "glossaryTerm", ID: "revenue", Name: "Revenue", Parent: "urn:li:dataset:nope", LineNum: 2},
		{Type: "glossaryNode", ID: "finance", Name: "Finance", LineNum: 3},
	}

	result, err := service.Import(context.Background(), raws, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Errors, 2)
	for _, ierr := range result.Errors {
		assert.Equal(t, "type", ierr.Field)
		assert.Contains(t, ierr.Message, "catalog glossary")
	}
	assert.Empty(t, db.Entities)
}

func TestImportService_Import_PrefersURN(t *testing.T) {
	service, db := newTestImportService(t)
	existing := entities.URN("urn:li:dashboard:(looker,42)")
	db.Entities[existing] = &entities.Entity{URN: existing, Type: entities.EntityTypeDashboard, Name: "Revenue"}

	result, err := service.Import(context.Background(), []parsers.RawEntity{
		{URN: string(existing), Type: "dashboard", Name: "Revenue", Platform: "looker", LineNum: 2},
		{URN: "urn:li:chart:(looker,7)", Type: "dashboard", Name: "Orders", Platform: "looker", LineNum: 3},
	}, ImportOptions{OnConflict: ConflictSkip})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Line)
	assert.Equal(t, "urn", result.Errors[0].Field)
	assert.Len(t, db.Entities, 1)
}

func TestImportService_Import_ValidationErrors(t *testing.T) {
	service, db := newTestImportService(t)
	raws := []parsers.RawEntity{
		{Type: "", Name: "orphan"},
		{Type: "tag", Name: ""},
		{Type: "notebook", Name: "n"},
		{Type: "dataset", Name: "db.orders"},
		{Type: "tag", ID: "ok", Name: "OK"},
	}

	result, err := service.Import(context.Background(), raws, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 4)
	assert.Equal(t, "type", result.Errors[0].Field)
	assert.Equal(t, 1, result.Errors[0].Line)
	assert.Equal(t, "name", result.Errors[1].Field)
	assert.Equal(t, "type", result.Errors[2].Field)
	assert.Equal(t, "notebook", result.Errors[2].Value)
	assert.Equal(t, "platform", result.Errors[3].Field)
	assert.Equal(t, "line 4: platform is required", result.Errors[3].Error())
	assert.Len(t, db.Entities, 1)
}

func TestImportService_Import_DuplicateWithinFile(t *testing.T) {
	service, _ := newTestImportService(t)
	raws := []parsers.RawEntity{
		{Type: "tag", ID: "pii", Name: "PII", LineNum: 2},
		{Type: "tag", ID: "pii", Name: "Personal data", LineNum: 5},
	}

	result, err := service.Import(context.Background(), raws, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 5, result.Errors[0].Line)
	assert.Contains(t, result.Errors[0].Message, "first seen on line 2")
}

func TestImportService_Import_SkipExisting(t *testing.T) {
	service, db := newTestImportService(t)
	db.Entities["urn:li:tag:pii"] = &entities.Entity{URN: "urn:li:tag:pii", Type: entities.EntityTypeTag, Name: "Old"}

	result, err := service.Import(context.Background(), []parsers.RawEntity{
		{Type: "tag", ID: "pii", Name: "New"},
		{Type: "tag", ID: "gold", Name: "Gold"},
	}, ImportOptions{OnConflict: ConflictSkip})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "Old", db.Entities["urn:li:tag:pii"].Name)
}

func TestImportService_Import_OverwriteKeepsCreatedAt(t *testing.T) {
	service, db := newTestImportService(t)
	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	db.Entities["urn:li:tag:pii"] = &entities.Entity{URN: "urn:li:tag:pii", Type: entities.EntityTypeTag, Name: "Old", CreatedAt: created}

	result, err := service.Import(context.Background(), []parsers.RawEntity{
		{Type: "tag", ID: "pii", Name: "New"},
	}, ImportOptions{OnConflict: ConflictOverwrite})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	stored := db.Entities["urn:li:tag:pii"]
	assert.Equal(t, "New", stored.Name)
	assert.Equal(t, created, stored.CreatedAt)
	assert.True(t, stored.UpdatedAt.After(created))
}

func TestImportService_Import_DryRun(t *testing.T) {
	service, db := newTestImportService(t)
	db.Entities["urn:li:tag:pii"] = &entities.Entity{URN: "urn:li:tag:pii", Type: entities.EntityTypeTag, Name: "Old"}

	result, err := service.Import(context.Background(), []parsers.RawEntity{
		{Type: "tag", ID: "pii", Name: "New"},
		{Type: "tag", ID: "gold", Name: "Gold"},
	}, ImportOptions{DryRun: true, OnConflict: ConflictSkip})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Entities)
	assert.Len(t, db.Entities, 1)
	assert.Empty(t, db.Audit)
}

func TestImportService_Import_Empty(t *testing.T) {
	service, _ := newTestImportService(t)

	result, err := service.Import(context.Background(), nil, ImportOptions{})

	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Empty(t, result.Errors)
}
