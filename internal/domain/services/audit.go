package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/ports"
)

// recordAudit writes an audit entry. The mutation it describes has already
// been committed, so a failure here is logged rather than returned.
func recordAudit(ctx context.Context, db ports.CatalogDB, logger zerolog.Logger, action string, urn entities.URN, details map[string]any) {
	if err := db.LogAction(ctx, action, urn, details); err != nil {
		logger.Warn().Err(err).Str("action", action).Str("urn", string(urn)).Msg("writing audit entry")
	}
}
