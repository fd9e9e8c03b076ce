package integration

import (
	"context"
	"os"
	"testing"

	"github.com/ersonp/catalog-core/internal/infrastructure/config"
	embedder "github.com/ersonp/catalog-core/internal/infrastructure/embedder/openai"
	"github.com/ersonp/catalog-core/internal/infrastructure/vectordb/qdrant"
)

const (
	testQdrantHost = "localhost"
	testQdrantPort = 6334
	testCollection = "catalog_integration_test"
)

var testRepo *qdrant.Repository

func TestMain(m *testing.M) {
	// Skip if INTEGRATION_TEST is not set
	if os.Getenv("INTEGRATION_TEST") != "1" {
		os.Exit(0)
	}

	cfg := config.QdrantConfig{
		Host:       testQdrantHost,
		Port:       testQdrantPort,
		Collection: testCollection,
	}

	var err error
	testRepo, err = qdrant.NewRepository(cfg)
	if err != nil {
		panic("failed to create repository: " + err.Error())
	}

	ctx := context.Background()
	_ = testRepo.DeleteCollection(ctx) // Ignore error if collection doesn't exist
	if err := testRepo.EnsureCollection(ctx, embedder.VectorSize); err != nil {
		panic("failed to create collection: " + err.Error())
	}

	code := m.Run()

	_ = testRepo.DeleteCollection(ctx)
	testRepo.Close()

	os.Exit(code)
}

// resetCollection drops every indexed document between tests.
func resetCollection(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	if err := testRepo.DeleteCollection(ctx); err != nil {
		t.Fatalf("failed to delete collection: %v", err)
	}
	if err := testRepo.EnsureCollection(ctx, embedder.VectorSize); err != nil {
		t.Fatalf("failed to recreate collection: %v", err)
	}
}

// axis returns a unit vector along dimension i. Distinct axes are
// orthogonal, so cosine scores are either 1 or 0.
func axis(i int) []float32 {
	v := make([]float32, embedder.VectorSize)
	v[i] = 1
	return v
}
