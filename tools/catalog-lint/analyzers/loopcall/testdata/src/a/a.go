package a

import "context"

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type CatalogDB interface {
	FindEntity(ctx context.Context, urn string) (any, error)
	FindEntitiesByURNs(ctx context.Context, urns []string) ([]any, error)
}

func bad(ctx context.Context, urns []string, e Embedder, db CatalogDB) {
	for _, urn := range urns {
		e.Embed(ctx, urn)       // want "potential N\\+1: Embed called inside loop, use EmbedBatch"
		db.FindEntity(ctx, urn) // want "potential N\\+1: FindEntity called inside loop, use FindEntitiesByURNs"
	}
}

func nested(ctx context.Context, groups [][]string, db CatalogDB) {
	for _, urns := range groups {
		for i := 0; i < len(urns); i++ {
			db.FindEntity(ctx, urns[i]) // want "potential N\\+1: FindEntity called inside loop"
		}
	}
}

func good(ctx context.Context, urns []string, e Embedder, db CatalogDB) {
	db.FindEntitiesByURNs(ctx, urns)
	e.EmbedBatch(ctx, urns)
	for _, urn := range urns {
		_ = len(urn)
	}
}
