package qdrant

import (
	"testing"

	pb "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/catalog-core/internal/domain/entities"
)

func TestPointID_Deterministic(t *testing.T) {
	urn := entities.URN("urn:li:dataset:(urn:li:dataPlatform:hive,db.orders,PROD)")

	assert.Equal(t, PointID(urn), PointID(urn))
	assert.NotEqual(t, PointID(urn), PointID("urn:li:dataset:other"))
	assert.Len(t, PointID(urn), 36)
}

func TestDocToPoint(t *testing.T) {
	doc := entities.SearchDocument{
		URN:       "urn:li:tag:pii",
		Type:      entities.EntityTypeTag,
		Name:      "pii",
		Text:      "Tag: pii",
		Embedding: []float32{0.1, 0.2},
	}

	point := docToPoint(doc, "2026-01-01T00:00:00Z")
	assert.Equal(t, PointID(doc.URN), point.Id.GetUuid())
	assert.Equal(t, []float32{0.1, 0.2}, point.Vectors.GetVector().GetData())
	assert.Equal(t, "urn:li:tag:pii", getStringValue(point.Payload, payloadURN))
	assert.Equal(t, "tag", getStringValue(point.Payload, payloadType))
	assert.Equal(t, "Tag: pii", getStringValue(point.Payload, payloadText))
}

func TestTypeFilter(t *testing.T) {
	assert.Nil(t, typeFilter(nil))

	filter := typeFilter([]entities.EntityType{entities.EntityTypeDataset, entities.EntityTypeChart})
	require.NotNil(t, filter)
	require.Len(t, filter.Must, 1)

	field := filter.Must[0].GetField()
	require.NotNil(t, field)
	assert.Equal(t, payloadType, field.Key)
	assert.Equal(t, []string{"dataset", "chart"}, field.Match.GetKeywords().GetStrings())
}

func TestScoredPointsToHits(t *testing.T) {
	points := []*pb.ScoredPoint{
		{
			Score: 0.9,
			Payload: map[string]*pb.Value{
				payloadURN:  stringValue("urn:li:tag:pii"),
				payloadType: stringValue("tag"),
				payloadName: stringValue("pii"),
			},
		},
	}

	hits := scoredPointsToHits(points)
	require.Len(t, hits, 1)
	assert.Equal(t, entities.URN("urn:li:tag:pii"), hits[0].URN)
	assert.Equal(t, entities.EntityTypeTag, hits[0].Type)
	assert.InDelta(t, 0.9, hits[0].Score, 1e-6)
}
