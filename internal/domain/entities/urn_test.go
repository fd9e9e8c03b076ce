package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURN(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "urn:li:corpuser:jdoe"},
		{name: "tuple key", input: "urn:li:dataset:(urn:li:dataPlatform:hive,db.orders,PROD)"},
		{name: "surrounding space", input: "  urn:li:tag:pii "},
		{name: "wrong prefix", input: "urn:x:tag:pii", wantErr: true},
		{name: "no type", input: "urn:li::pii", wantErr: true},
		{name: "no key", input: "urn:li:tag:", wantErr: true},
		{name: "no key separator", input: "urn:li:tag", wantErr: true},
		{name: "open tuple", input: "urn:li:dataset:(urn:li:dataPlatform:hive,db.orders", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urn, err := ParseURN(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, urn.Key())
		})
	}
}

func TestURN_Parts(t *testing.T) {
	urn := NewURN(EntityTypeDataset, "(urn:li:dataPlatform:hive,db.orders,PROD)")

	assert.Equal(t, "urn:li:dataset:(urn:li:dataPlatform:hive,db.orders,PROD)", urn.String())
	assert.Equal(t, EntityTypeDataset, urn.EntityType())
	assert.Equal(t, "(urn:li:dataPlatform:hive,db.orders,PROD)", urn.Key())
	assert.Equal(t, []string{"urn:li:dataPlatform:hive", "db.orders", "PROD"}, urn.TupleParts())
}

func TestURN_TupleParts_Nested(t *testing.T) {
	urn := URN("urn:li:dataJob:(urn:li:dataFlow:(airflow,daily,PROD),load)")
	assert.Equal(t, []string{"urn:li:dataFlow:(airflow,daily,PROD)", "load"}, urn.TupleParts())

	assert.Equal(t, []string{"jdoe"}, NewURN(EntityTypeCorpUser, "jdoe").TupleParts())
}

func TestParseEntityType(t *testing.T) {
	got, ok := ParseEntityType("CorpUser")
	require.True(t, ok)
	assert.Equal(t, EntityTypeCorpUser, got)

	got, ok = ParseEntityType(" GLOSSARYTERM ")
	require.True(t, ok)
	assert.Equal(t, EntityTypeGlossaryTerm, got)

	_, ok = ParseEntityType("notebook")
	assert.False(t, ok)
}

func TestEntityType_IsValid(t *testing.T) {
	for _, et := range AllEntityTypes() {
		assert.True(t, et.IsValid(), et)
	}
	assert.False(t, EntityType("Dataset").IsValid())
	assert.False(t, EntityType("").IsValid())
}

func TestAllEntityTypes_ReturnsCopy(t *testing.T) {
	types := AllEntityTypes()
	types[0] = "mutated"
	assert.Equal(t, EntityTypeDataset, AllEntityTypes()[0])
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "orders", NormalizeName("  Orders "))
	assert.Equal(t, NormalizeName("ÉCOLE"), NormalizeName("école"))
}

func TestErrors(t *testing.T) {
	err := NewNotFoundError("entity", "urn:li:tag:x")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAlreadyExists(err))
	assert.Contains(t, err.Error(), "urn:li:tag:x")

	err = NewAlreadyExistsError("entity", "urn:li:tag:x")
	assert.True(t, IsAlreadyExists(err))

	err = NewValidationError("name", "name is required")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, `validation failed for field "name": name is required`, err.Error())
}

func TestLineageType_IsValid(t *testing.T) {
	assert.True(t, LineageProduces.IsValid())
	assert.False(t, LineageType("Feeds").IsValid())
}

func TestDefaultOwnershipTypes(t *testing.T) {
	assert.True(t, IsDefaultOwnershipType(OwnershipTechnicalOwner))
	assert.False(t, IsDefaultOwnershipType("CUSTOM"))
	assert.Equal(t, []string{"TECHNICAL_OWNER", "BUSINESS_OWNER", "DATA_STEWARD", "NONE"}, DefaultOwnershipTypeNames())
}
