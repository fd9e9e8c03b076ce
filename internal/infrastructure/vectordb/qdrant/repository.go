// Package qdrant provides a SearchIndex implementation using Qdrant.
package qdrant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/infrastructure/config"
)

// Payload keys stored with every point.
const (
	payloadURN       = "urn"
	payloadType      = "type"
	payloadName      = "name"
	payloadText      = "text"
	payloadIndexedAt = "indexed_at"
)

// Repository implements ports.SearchIndex and ports.CollectionManager using Qdrant.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	apiKey     string
	conn       *grpc.ClientConn
}

// NewRepository creates a new Qdrant repository.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = config.DefaultCollection
	}

	return &Repository{
		client:     pb.NewCollectionsClient(conn),
		points:     pb.NewPointsClient(conn),
		collection: collection,
		apiKey:     cfg.APIKey,
		conn:       conn,
	}, nil
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// withAuth attaches the API key expected by Qdrant Cloud.
func (r *Repository) withAuth(ctx context.Context) context.Context {
	if r.apiKey == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "api-key", r.apiKey)
}

// EnsureCollection creates the collection if it doesn't exist.
func (r *Repository) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	ctx = r.withAuth(ctx)
	_, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err == nil {
		return nil
	}

	_, err = r.client.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     vectorSize,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

// DeleteCollection removes the collection and all indexed documents.
func (r *Repository) DeleteCollection(ctx context.Context) error {
	_, err := r.client.Delete(r.withAuth(ctx), &pb.DeleteCollection{
		CollectionName: r.collection,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}

// PointID derives a stable point id from a URN so re-indexing replaces
// the previous point instead of adding another.
func PointID(urn entities.URN) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(urn)).String()
}

// Upsert stores documents with their embeddings. It returns once Qdrant
// has applied the write, so a following Search sees the documents.
func (r *Repository) Upsert(ctx context.Context, docs []entities.SearchDocument) error {
	if len(docs) == 0 {
		return nil
	}

	indexedAt := time.Now().UTC().Format(time.RFC3339)
	points := make([]*pb.PointStruct, 0, len(docs))
	for _, doc := range docs {
		points = append(points, docToPoint(doc, indexedAt))
	}

	wait := true
	_, err := r.points.Upsert(r.withAuth(ctx), &pb.UpsertPoints{
		CollectionName: r.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// Search performs a semantic search, optionally restricted to entity types.
func (r *Repository) Search(ctx context.Context, embedding []float32, types []entities.EntityType, limit int) ([]entities.SearchHit, error) {
	resp, err := r.points.Search(r.withAuth(ctx), &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		Filter:         typeFilter(types),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	return scoredPointsToHits(resp.Result), nil
}

// Delete removes the document for urn.
func (r *Repository) Delete(ctx context.Context, urn entities.URN) error {
	wait := true
	_, err := r.points.Delete(r.withAuth(ctx), &pb.DeletePoints{
		CollectionName: r.collection,
		Wait:           &wait,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{
					Ids: []*pb.PointId{
						{PointIdOptions: &pb.PointId_Uuid{Uuid: PointID(urn)}},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting point: %w", err)
	}

	return nil
}

// Count returns the total number of indexed documents.
func (r *Repository) Count(ctx context.Context) (uint64, error) {
	resp, err := r.client.Get(r.withAuth(ctx), &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("getting collection info: %w", err)
	}

	if resp.Result.PointsCount == nil {
		return 0, nil
	}

	return *resp.Result.PointsCount, nil
}

func docToPoint(doc entities.SearchDocument, indexedAt string) *pb.PointStruct {
	return &pb.PointStruct{
		Id: &pb.PointId{
			PointIdOptions: &pb.PointId_Uuid{Uuid: PointID(doc.URN)},
		},
		Vectors: &pb.Vectors{
			VectorsOptions: &pb.Vectors_Vector{
				Vector: &pb.Vector{
					Data: doc.Embedding,
				},
			},
		},
		Payload: map[string]*pb.Value{
			payloadURN:       stringValue(string(doc.URN)),
			payloadType:      stringValue(string(doc.Type)),
			payloadName:      stringValue(doc.Name),
			payloadText:      stringValue(doc.Text),
			payloadIndexedAt: stringValue(indexedAt),
		},
	}
}

// typeFilter matches any of the given types. No types means no filter.
func typeFilter(types []entities.EntityType) *pb.Filter {
	if len(types) == 0 {
		return nil
	}

	keywords := make([]string, len(types))
	for i, t := range types {
		keywords[i] = string(t)
	}

	return &pb.Filter{
		Must: []*pb.Condition{
			{
				ConditionOneOf: &pb.Condition_Field{
					Field: &pb.FieldCondition{
						Key: payloadType,
						Match: &pb.Match{
							MatchValue: &pb.Match_Keywords{
								Keywords: &pb.RepeatedStrings{Strings: keywords},
							},
						},
					},
				},
			},
		},
	}
}

// scoredPointsToHits converts scored points to search hits.
func scoredPointsToHits(points []*pb.ScoredPoint) []entities.SearchHit {
	hits := make([]entities.SearchHit, 0, len(points))
	for _, point := range points {
		payload := point.Payload
		hits = append(hits, entities.SearchHit{
			URN:   entities.URN(getStringValue(payload, payloadURN)),
			Type:  entities.EntityType(getStringValue(payload, payloadType)),
			Name:  getStringValue(payload, payloadName),
			Score: point.Score,
		})
	}
	return hits
}

func stringValue(s string) *pb.Value {
	return &pb.Value{Kind: &pb.Value_StringValue{StringValue: s}}
}

// getStringValue extracts a string payload field.
func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
