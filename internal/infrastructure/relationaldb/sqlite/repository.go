// Package sqlite provides a SQLite implementation of the CatalogDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/infrastructure/config"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.CatalogDB using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Each connection to :memory: is a separate database.
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Catalog entities, keyed by URN
	CREATE TABLE IF NOT EXISTS entities (
		urn TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		platform TEXT NOT NULL DEFAULT '',
		parent_urn TEXT NOT NULL DEFAULT '',
		properties TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_entities_type ON entities(type);
	CREATE INDEX IF NOT EXISTS idx_entities_normalized ON entities(normalized_name);
	CREATE INDEX IF NOT EXISTS idx_entities_parent ON entities(parent_urn);

	-- Lineage edges (upstream feeds downstream)
	CREATE TABLE IF NOT EXISTS lineage (
		id TEXT PRIMARY KEY,
		upstream_urn TEXT NOT NULL,
		downstream_urn TEXT NOT NULL,
		type TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(upstream_urn, downstream_urn, type)
	);
	CREATE INDEX IF NOT EXISTS idx_lineage_upstream ON lineage(upstream_urn);
	CREATE INDEX IF NOT EXISTS idx_lineage_downstream ON lineage(downstream_urn);

	-- Ownership categories
	CREATE TABLE IF NOT EXISTS ownership_types (
		name TEXT PRIMARY KEY,
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Entity owners
	CREATE TABLE IF NOT EXISTS owners (
		entity_urn TEXT NOT NULL,
		owner_urn TEXT NOT NULL,
		kind TEXT NOT NULL,
		ownership_type TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (entity_urn, owner_urn, ownership_type)
	);
	CREATE INDEX IF NOT EXISTS idx_owners_owner ON owners(owner_urn);

	-- Audit log (tracks all mutations)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		urn TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_urn ON audit_log(urn);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	CREATE INDEX IF NOT EXISTS idx_audit_log_created ON audit_log(created_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

const entityColumns = `urn, type, name, normalized_name, description, platform, parent_urn, properties, created_at, updated_at`

// SaveEntity inserts an entity or updates the one with the same URN.
// The original creation time is kept on update.
func (r *Repository) SaveEntity(ctx context.Context, entity *entities.Entity) error {
	var props sql.NullString
	if len(entity.Properties) > 0 {
		data, err := json.Marshal(entity.Properties)
		if err != nil {
			return fmt.Errorf("marshaling properties: %w", err)
		}
		props = sql.NullString{String: string(data), Valid: true}
	}

	createdAt, updatedAt := entity.CreatedAt, entity.UpdatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	query := `
		INSERT INTO entities (` + entityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(urn) DO UPDATE SET
			name = excluded.name,
			normalized_name = excluded.normalized_name,
			description = excluded.description,
			platform = excluded.platform,
			parent_urn = excluded.parent_urn,
			properties = excluded.properties,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		string(entity.URN),
		string(entity.Type),
		entity.Name,
		entities.NormalizeName(entity.Name),
		entity.Description,
		entity.Platform,
		string(entity.ParentURN),
		props,
		createdAt,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving entity: %w", err)
	}
	return nil
}

// FindEntity finds an entity by URN.
func (r *Repository) FindEntity(ctx context.Context, urn entities.URN) (*entities.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE urn = ?`
	row := r.db.QueryRowContext(ctx, query, string(urn))

	entity, err := scanEntity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// FindEntitiesByURNs finds multiple entities in a single query.
func (r *Repository) FindEntitiesByURNs(ctx context.Context, urns []entities.URN) ([]*entities.Entity, error) {
	if len(urns) == 0 {
		return []*entities.Entity{}, nil
	}

	args := make([]any, len(urns))
	for i, urn := range urns {
		args[i] = string(urn)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM entities
		WHERE urn IN (%s)
		ORDER BY name ASC, urn ASC
	`, entityColumns, placeholders(len(urns)))

	return r.queryEntities(ctx, query, len(urns), args...)
}

// ListEntities lists entities ordered by name. An empty type lists all types.
func (r *Repository) ListEntities(ctx context.Context, entityType entities.EntityType, limit, offset int) ([]*entities.Entity, error) {
	query := `
		SELECT ` + entityColumns + `
		FROM entities
		WHERE (? = '' OR type = ?)
		ORDER BY name ASC, urn ASC
		LIMIT ? OFFSET ?
	`
	return r.queryEntities(ctx, query, limit, string(entityType), string(entityType), limit, offset)
}

// SearchEntities searches entities by name pattern, optionally limited to types.
func (r *Repository) SearchEntities(ctx context.Context, query string, types []entities.EntityType, limit int) ([]*entities.Entity, error) {
	args := []any{"%" + escapeLike(entities.NormalizeName(query)) + "%"}
	typeFilter := ""
	if len(types) > 0 {
		typeFilter = fmt.Sprintf("AND type IN (%s)", placeholders(len(types)))
		for _, t := range types {
			args = append(args, string(t))
		}
	}
	args = append(args, limit)

	sqlQuery := fmt.Sprintf(`
		SELECT %s
		FROM entities
		WHERE normalized_name LIKE ? ESCAPE '\' %s
		ORDER BY name ASC, urn ASC
		LIMIT ?
	`, entityColumns, typeFilter)

	return r.queryEntities(ctx, sqlQuery, limit, args...)
}

// CountEntities counts entities of a type. An empty type counts all.
func (r *Repository) CountEntities(ctx context.Context, entityType entities.EntityType) (int, error) {
	query := `SELECT COUNT(*) FROM entities WHERE (? = '' OR type = ?)`
	var count int
	err := r.db.QueryRowContext(ctx, query, string(entityType), string(entityType)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting entities: %w", err)
	}
	return count, nil
}

// DeleteEntity deletes an entity by URN.
func (r *Repository) DeleteEntity(ctx context.Context, urn entities.URN) error {
	query := `DELETE FROM entities WHERE urn = ?`
	result, err := r.db.ExecContext(ctx, query, string(urn))
	if err != nil {
		return fmt.Errorf("deleting entity: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return entities.NewNotFoundError("entity", string(urn))
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (*entities.Entity, error) {
	var (
		entity              entities.Entity
		urn, typ, parentURN string
		props               sql.NullString
	)
	err := row.Scan(
		&urn,
		&typ,
		&entity.Name,
		&entity.NormalizedName,
		&entity.Description,
		&entity.Platform,
		&parentURN,
		&props,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entity: %w", err)
	}

	entity.URN = entities.URN(urn)
	entity.Type = entities.EntityType(typ)
	entity.ParentURN = entities.URN(parentURN)
	if props.Valid && props.String != "" {
		if err := json.Unmarshal([]byte(props.String), &entity.Properties); err != nil {
			return nil, fmt.Errorf("unmarshaling properties: %w", err)
		}
	}
	return &entity, nil
}

// queryEntities is a helper to execute entity queries.
func (r *Repository) queryEntities(ctx context.Context, query string, capHint int, args ...any) ([]*entities.Entity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	if capHint < 0 {
		capHint = 0
	}
	result := make([]*entities.Entity, 0, capHint)
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entity)
	}
	return result, rows.Err()
}

// SaveLineage saves or updates a lineage edge.
func (r *Repository) SaveLineage(ctx context.Context, edge *entities.LineageEdge) error {
	createdAt := edge.CreatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}

	query := `
		INSERT INTO lineage (id, upstream_urn, downstream_urn, type, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			upstream_urn = excluded.upstream_urn,
			downstream_urn = excluded.downstream_urn,
			type = excluded.type
	`
	_, err := r.db.ExecContext(ctx, query,
		edge.ID,
		string(edge.UpstreamURN),
		string(edge.DownstreamURN),
		string(edge.Type),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("saving lineage edge: %w", err)
	}
	return nil
}

// FindLineageByEntity finds all edges where the entity is upstream or downstream.
func (r *Repository) FindLineageByEntity(ctx context.Context, urn entities.URN) ([]entities.LineageEdge, error) {
	query := `
		SELECT id, upstream_urn, downstream_urn, type, created_at
		FROM lineage
		WHERE upstream_urn = ? OR downstream_urn = ?
		ORDER BY created_at DESC, id ASC
	`
	return r.queryLineage(ctx, query, string(urn), string(urn))
}

// FindLineageBetween finds the direct edge from upstream to downstream.
// Returns nil if no edge exists.
func (r *Repository) FindLineageBetween(ctx context.Context, upstream, downstream entities.URN) (*entities.LineageEdge, error) {
	query := `
		SELECT id, upstream_urn, downstream_urn, type, created_at
		FROM lineage
		WHERE upstream_urn = ? AND downstream_urn = ?
		LIMIT 1
	`
	edges, err := r.queryLineage(ctx, query, string(upstream), string(downstream))
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return nil, nil
	}
	return &edges[0], nil
}

// FindUpstreams returns every URN that feeds urn within depth hops.
// Uses a recursive CTE; cycles terminate because the level is bounded.
func (r *Repository) FindUpstreams(ctx context.Context, urn entities.URN, depth int) ([]entities.URN, error) {
	query := `
		WITH RECURSIVE walk(urn, level) AS (
			SELECT upstream_urn, 1
			FROM lineage
			WHERE downstream_urn = ?

			UNION

			SELECT l.upstream_urn, walk.level + 1
			FROM lineage l
			JOIN walk ON l.downstream_urn = walk.urn
			WHERE walk.level < ?
		)
		SELECT DISTINCT urn
		FROM walk
		WHERE urn != ?
		ORDER BY urn
	`
	return r.walkLineage(ctx, query, urn, depth)
}

// FindDownstreams returns every URN fed by urn within depth hops.
func (r *Repository) FindDownstreams(ctx context.Context, urn entities.URN, depth int) ([]entities.URN, error) {
	query := `
		WITH RECURSIVE walk(urn, level) AS (
			SELECT downstream_urn, 1
			FROM lineage
			WHERE upstream_urn = ?

			UNION

			SELECT l.downstream_urn, walk.level + 1
			FROM lineage l
			JOIN walk ON l.upstream_urn = walk.urn
			WHERE walk.level < ?
		)
		SELECT DISTINCT urn
		FROM walk
		WHERE urn != ?
		ORDER BY urn
	`
	return r.walkLineage(ctx, query, urn, depth)
}

func (r *Repository) walkLineage(ctx context.Context, query string, urn entities.URN, depth int) ([]entities.URN, error) {
	if depth < 1 {
		return []entities.URN{}, nil
	}

	rows, err := r.db.QueryContext(ctx, query, string(urn), depth, string(urn))
	if err != nil {
		return nil, fmt.Errorf("walking lineage: %w", err)
	}
	defer rows.Close()

	urns := make([]entities.URN, 0, 16)
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scanning urn: %w", err)
		}
		urns = append(urns, entities.URN(u))
	}
	return urns, rows.Err()
}

// DeleteLineage deletes an edge by ID.
func (r *Repository) DeleteLineage(ctx context.Context, id string) error {
	query := `DELETE FROM lineage WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting lineage edge: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return entities.NewNotFoundError("lineage edge", id)
	}
	return nil
}

// DeleteLineageByEntity deletes all edges touching an entity.
func (r *Repository) DeleteLineageByEntity(ctx context.Context, urn entities.URN) error {
	query := `DELETE FROM lineage WHERE upstream_urn = ? OR downstream_urn = ?`
	_, err := r.db.ExecContext(ctx, query, string(urn), string(urn))
	if err != nil {
		return fmt.Errorf("deleting lineage by entity: %w", err)
	}
	return nil
}

// CountLineage returns the total number of lineage edges.
func (r *Repository) CountLineage(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM lineage`
	var count int
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting lineage edges: %w", err)
	}
	return count, nil
}

// queryLineage is a helper to execute lineage queries.
func (r *Repository) queryLineage(ctx context.Context, query string, args ...any) ([]entities.LineageEdge, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying lineage: %w", err)
	}
	defer rows.Close()

	edges := make([]entities.LineageEdge, 0, 16)
	for rows.Next() {
		var edge entities.LineageEdge
		var upstream, downstream, lineageType string
		if err := rows.Scan(
			&edge.ID,
			&upstream,
			&downstream,
			&lineageType,
			&edge.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning lineage edge: %w", err)
		}
		edge.UpstreamURN = entities.URN(upstream)
		edge.DownstreamURN = entities.URN(downstream)
		edge.Type = entities.LineageType(lineageType)
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

// SaveOwner adds an owner, replacing the same owner/type pair.
func (r *Repository) SaveOwner(ctx context.Context, owner *entities.Owner) error {
	createdAt := owner.CreatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}

	query := `
		INSERT INTO owners (entity_urn, owner_urn, kind, ownership_type, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(entity_urn, owner_urn, ownership_type) DO UPDATE SET
			kind = excluded.kind
	`
	_, err := r.db.ExecContext(ctx, query,
		string(owner.EntityURN),
		string(owner.OwnerURN),
		string(owner.Kind),
		owner.OwnershipType,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("saving owner: %w", err)
	}
	return nil
}

// FindOwners lists the owners of an entity in the order they were added.
func (r *Repository) FindOwners(ctx context.Context, urn entities.URN) ([]entities.Owner, error) {
	query := `
		SELECT entity_urn, owner_urn, kind, ownership_type, created_at
		FROM owners
		WHERE entity_urn = ?
		ORDER BY created_at ASC, owner_urn ASC
	`
	rows, err := r.db.QueryContext(ctx, query, string(urn))
	if err != nil {
		return nil, fmt.Errorf("querying owners: %w", err)
	}
	defer rows.Close()

	owners := make([]entities.Owner, 0, 4)
	for rows.Next() {
		var o entities.Owner
		var entityURN, ownerURN, kind string
		if err := rows.Scan(&entityURN, &ownerURN, &kind, &o.OwnershipType, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}
		o.EntityURN = entities.URN(entityURN)
		o.OwnerURN = entities.URN(ownerURN)
		o.Kind = entities.OwnerKind(kind)
		owners = append(owners, o)
	}
	return owners, rows.Err()
}

// DeleteOwnersByEntity removes every owner of an entity.
func (r *Repository) DeleteOwnersByEntity(ctx context.Context, urn entities.URN) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM owners WHERE entity_urn = ?`, string(urn))
	if err != nil {
		return fmt.Errorf("deleting owners: %w", err)
	}
	return nil
}

// SaveOwnershipType saves or updates an ownership type.
func (r *Repository) SaveOwnershipType(ctx context.Context, ot *entities.OwnershipType) error {
	createdAt := ot.CreatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}

	query := `
		INSERT INTO ownership_types (name, description, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			description = excluded.description
	`
	_, err := r.db.ExecContext(ctx, query, ot.Name, ot.Description, createdAt)
	if err != nil {
		return fmt.Errorf("saving ownership type: %w", err)
	}
	return nil
}

// FindOwnershipType finds an ownership type by name.
func (r *Repository) FindOwnershipType(ctx context.Context, name string) (*entities.OwnershipType, error) {
	query := `
		SELECT name, description, created_at
		FROM ownership_types
		WHERE name = ?
	`
	row := r.db.QueryRowContext(ctx, query, name)

	var ot entities.OwnershipType
	var description sql.NullString

	err := row.Scan(&ot.Name, &description, &ot.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning ownership type: %w", err)
	}

	ot.Description = description.String
	return &ot, nil
}

// ListOwnershipTypes lists all ownership types.
func (r *Repository) ListOwnershipTypes(ctx context.Context) ([]entities.OwnershipType, error) {
	query := `
		SELECT name, description, created_at
		FROM ownership_types
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying ownership types: %w", err)
	}
	defer rows.Close()

	types := make([]entities.OwnershipType, 0, 8)
	for rows.Next() {
		var ot entities.OwnershipType
		var description sql.NullString

		if err := rows.Scan(&ot.Name, &description, &ot.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning ownership type: %w", err)
		}
		ot.Description = description.String
		types = append(types, ot)
	}
	return types, rows.Err()
}

// DeleteOwnershipType deletes an ownership type by name.
func (r *Repository) DeleteOwnershipType(ctx context.Context, name string) error {
	query := `DELETE FROM ownership_types WHERE name = ?`
	result, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("deleting ownership type: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return entities.NewNotFoundError("ownership type", name)
	}
	return nil
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, urn entities.URN, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var urnValue sql.NullString
	if urn != "" {
		urnValue = sql.NullString{String: string(urn), Valid: true}
	}

	query := `INSERT INTO audit_log (action, urn, details, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, action, urnValue, detailsJSON, timeNow())
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a specific entity.
func (r *Repository) FindAuditLog(ctx context.Context, urn entities.URN) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, urn, details, created_at
		FROM audit_log
		WHERE urn = ?
		ORDER BY id DESC
	`
	return r.queryAuditLog(ctx, query, 0, string(urn))
}

// FindAuditLogByAction finds audit log entries by action type.
func (r *Repository) FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, urn, details, created_at
		FROM audit_log
		WHERE action = ?
		ORDER BY id DESC
		LIMIT ?
	`
	return r.queryAuditLog(ctx, query, limit, action, limit)
}

// queryAuditLog is a helper to execute audit log queries.
func (r *Repository) queryAuditLog(ctx context.Context, query string, capHint int, args ...any) ([]entities.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	if capHint < 0 {
		capHint = 0
	}
	entries := make([]entities.AuditEntry, 0, capHint)
	for rows.Next() {
		var entry entities.AuditEntry
		var urn, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&urn,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.URN = entities.URN(urn.String)

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
