package ports

import (
	"context"

	"github.com/ersonp/catalog-core/internal/domain/entities"
)

// CatalogDB defines the interface for the catalog's relational store.
// It holds entities, lineage, ownership and the audit log. Find methods
// return nil without an error when nothing matches.
type CatalogDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Entity operations

	// SaveEntity inserts an entity or updates the one with the same URN.
	SaveEntity(ctx context.Context, entity *entities.Entity) error

	// FindEntity finds an entity by URN.
	FindEntity(ctx context.Context, urn entities.URN) (*entities.Entity, error)

	// FindEntitiesByURNs finds several entities in one query. Missing URNs are skipped.
	FindEntitiesByURNs(ctx context.Context, urns []entities.URN) ([]*entities.Entity, error)

	// ListEntities lists entities ordered by name. An empty type lists all types.
	ListEntities(ctx context.Context, entityType entities.EntityType, limit, offset int) ([]*entities.Entity, error)

	// SearchEntities matches the normalized name against query, optionally
	// restricted to the given types.
	SearchEntities(ctx context.Context, query string, types []entities.EntityType, limit int) ([]*entities.Entity, error)

	// CountEntities counts entities of a type. An empty type counts all.
	CountEntities(ctx context.Context, entityType entities.EntityType) (int, error)

	// DeleteEntity deletes an entity by URN.
	DeleteEntity(ctx context.Context, urn entities.URN) error

	// Lineage operations

	// SaveLineage saves or updates a lineage edge.
	SaveLineage(ctx context.Context, edge *entities.LineageEdge) error

	// FindLineageByEntity finds all edges touching an entity on either side.
	FindLineageByEntity(ctx context.Context, urn entities.URN) ([]entities.LineageEdge, error)

	// FindLineageBetween finds the direct edge from upstream to downstream.
	FindLineageBetween(ctx context.Context, upstream, downstream entities.URN) (*entities.LineageEdge, error)

	// FindUpstreams returns the URNs feeding urn, up to depth hops away.
	FindUpstreams(ctx context.Context, urn entities.URN, depth int) ([]entities.URN, error)

	// FindDownstreams returns the URNs fed by urn, up to depth hops away.
	FindDownstreams(ctx context.Context, urn entities.URN, depth int) ([]entities.URN, error)

	// DeleteLineage deletes an edge by ID.
	DeleteLineage(ctx context.Context, id string) error

	// DeleteLineageByEntity deletes every edge touching an entity.
	DeleteLineageByEntity(ctx context.Context, urn entities.URN) error

	// CountLineage returns the total number of edges.
	CountLineage(ctx context.Context) (int, error)

	// Ownership operations

	// SaveOwner adds or updates an owner of an entity.
	SaveOwner(ctx context.Context, owner *entities.Owner) error

	// FindOwners lists the owners of an entity.
	FindOwners(ctx context.Context, urn entities.URN) ([]entities.Owner, error)

	// DeleteOwnersByEntity removes every owner of an entity.
	DeleteOwnersByEntity(ctx context.Context, urn entities.URN) error

	// SaveOwnershipType saves or updates an ownership type.
	SaveOwnershipType(ctx context.Context, ot *entities.OwnershipType) error

	// FindOwnershipType finds an ownership type by name.
	FindOwnershipType(ctx context.Context, name string) (*entities.OwnershipType, error)

	// ListOwnershipTypes lists all ownership types by name.
	ListOwnershipTypes(ctx context.Context) ([]entities.OwnershipType, error)

	// DeleteOwnershipType deletes an ownership type by name.
	DeleteOwnershipType(ctx context.Context, name string) error

	// Audit operations

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, urn entities.URN, details map[string]any) error

	// FindAuditLog finds audit log entries for an entity, newest first.
	FindAuditLog(ctx context.Context, urn entities.URN) ([]entities.AuditEntry, error)

	// FindAuditLogByAction finds audit log entries by action type.
	FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error)
}
