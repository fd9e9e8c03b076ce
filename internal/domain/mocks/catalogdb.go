package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/ersonp/catalog-core/internal/domain/entities"
)

// CatalogDB is an in-memory mock implementation of ports.CatalogDB.
// Err, when set, is returned by every method.
type CatalogDB struct {
	Entities       map[entities.URN]*entities.Entity
	Edges          map[string]entities.LineageEdge
	Owners         map[entities.URN][]entities.Owner
	OwnershipTypes map[string]*entities.OwnershipType
	Audit          []entities.AuditEntry
	Err            error

	// SaveEntityErr fails only SaveEntity.
	SaveEntityErr error
}

// NewCatalogDB creates a new empty mock CatalogDB.
func NewCatalogDB() *CatalogDB {
	return &CatalogDB{
		Entities:       make(map[entities.URN]*entities.Entity),
		Edges:          make(map[string]entities.LineageEdge),
		Owners:         make(map[entities.URN][]entities.Owner),
		OwnershipTypes: make(map[string]*entities.OwnershipType),
	}
}

// EnsureSchema returns the configured error.
func (m *CatalogDB) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close is a no-op.
func (m *CatalogDB) Close() error {
	return nil
}

// Entity methods.

func (m *CatalogDB) SaveEntity(_ context.Context, e *entities.Entity) error {
	if m.Err != nil {
		return m.Err
	}
	if m.SaveEntityErr != nil {
		return m.SaveEntityErr
	}
	stored := *e
	m.Entities[e.URN] = &stored
	return nil
}

func (m *CatalogDB) FindEntity(_ context.Context, urn entities.URN) (*entities.Entity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.Entities[urn]
	if !ok {
		return nil, nil
	}
	out := *e
	return &out, nil
}

func (m *CatalogDB) FindEntitiesByURNs(ctx context.Context, urns []entities.URN) ([]*entities.Entity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*entities.Entity, 0, len(urns))
	for _, urn := range urns {
		if e, _ := m.FindEntity(ctx, urn); e != nil {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *CatalogDB) ListEntities(_ context.Context, t entities.EntityType, limit, offset int) ([]*entities.Entity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	all := m.sorted(func(e *entities.Entity) bool { return t == "" || e.Type == t })
	if offset >= len(all) {
		return []*entities.Entity{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *CatalogDB) SearchEntities(_ context.Context, query string, types []entities.EntityType, limit int) ([]*entities.Entity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	needle := entities.NormalizeName(query)
	result := m.sorted(func(e *entities.Entity) bool {
		return strings.Contains(e.NormalizedName, needle) && typeIn(e.Type, types)
	})
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (m *CatalogDB) CountEntities(_ context.Context, t entities.EntityType) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.sorted(func(e *entities.Entity) bool { return t == "" || e.Type == t })), nil
}

func (m *CatalogDB) DeleteEntity(_ context.Context, urn entities.URN) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Entities[urn]; !ok {
		return entities.NewNotFoundError("entity", string(urn))
	}
	delete(m.Entities, urn)
	return nil
}

// sorted returns copies of the matching entities ordered by name, then URN.
func (m *CatalogDB) sorted(keep func(*entities.Entity) bool) []*entities.Entity {
	result := make([]*entities.Entity, 0, len(m.Entities))
	for _, e := range m.Entities {
		if keep(e) {
			out := *e
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].URN < result[j].URN
	})
	return result
}

func typeIn(t entities.EntityType, types []entities.EntityType) bool {
	if len(types) == 0 {
		return true
	}
	for _, want := range types {
		if want == t {
			return true
		}
	}
	return false
}

// Lineage methods.

func (m *CatalogDB) SaveLineage(_ context.Context, edge *entities.LineageEdge) error {
	if m.Err != nil {
		return m.Err
	}
	m.Edges[edge.ID] = *edge
	return nil
}

func (m *CatalogDB) FindLineageByEntity(_ context.Context, urn entities.URN) ([]entities.LineageEdge, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.LineageEdge
	for _, e := range m.Edges {
		if e.UpstreamURN == urn || e.DownstreamURN == urn {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *CatalogDB) FindLineageBetween(_ context.Context, upstream, downstream entities.URN) (*entities.LineageEdge, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, e := range m.Edges {
		if e.UpstreamURN == upstream && e.DownstreamURN == downstream {
			out := e
			return &out, nil
		}
	}
	return nil, nil
}

func (m *CatalogDB) FindUpstreams(_ context.Context, urn entities.URN, depth int) ([]entities.URN, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.walk(urn, depth, func(e entities.LineageEdge) (entities.URN, entities.URN) {
		return e.DownstreamURN, e.UpstreamURN
	}), nil
}

func (m *CatalogDB) FindDownstreams(_ context.Context, urn entities.URN, depth int) ([]entities.URN, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.walk(urn, depth, func(e entities.LineageEdge) (entities.URN, entities.URN) {
		return e.UpstreamURN, e.DownstreamURN
	}), nil
}

// walk does a breadth-first traversal. dir maps an edge to (from, to).
func (m *CatalogDB) walk(start entities.URN, depth int, dir func(entities.LineageEdge) (entities.URN, entities.URN)) []entities.URN {
	seen := map[entities.URN]bool{start: true}
	frontier := []entities.URN{start}
	result := []entities.URN{}
	for level := 0; level < depth && len(frontier) > 0; level++ {
		var next []entities.URN
		for _, cur := range frontier {
			for _, e := range m.Edges {
				from, to := dir(e)
				if from == cur && !seen[to] {
					seen[to] = true
					next = append(next, to)
					result = append(result, to)
				}
			}
		}
		frontier = next
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (m *CatalogDB) DeleteLineage(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Edges[id]; !ok {
		return entities.NewNotFoundError("lineage edge", id)
	}
	delete(m.Edges, id)
	return nil
}

func (m *CatalogDB) DeleteLineageByEntity(_ context.Context, urn entities.URN) error {
	if m.Err != nil {
		return m.Err
	}
	for id, e := range m.Edges {
		if e.UpstreamURN == urn || e.DownstreamURN == urn {
			delete(m.Edges, id)
		}
	}
	return nil
}

func (m *CatalogDB) CountLineage(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Edges), nil
}

// Ownership methods.

func (m *CatalogDB) SaveOwner(_ context.Context, owner *entities.Owner) error {
	if m.Err != nil {
		return m.Err
	}
	owners := m.Owners[owner.EntityURN]
	for i := range owners {
		if owners[i].OwnerURN == owner.OwnerURN && owners[i].OwnershipType == owner.OwnershipType {
			owners[i] = *owner
			return nil
		}
	}
	m.Owners[owner.EntityURN] = append(owners, *owner)
	return nil
}

func (m *CatalogDB) FindOwners(_ context.Context, urn entities.URN) ([]entities.Owner, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]entities.Owner(nil), m.Owners[urn]...), nil
}

func (m *CatalogDB) DeleteOwnersByEntity(_ context.Context, urn entities.URN) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Owners, urn)
	return nil
}

func (m *CatalogDB) SaveOwnershipType(_ context.Context, ot *entities.OwnershipType) error {
	if m.Err != nil {
		return m.Err
	}
	stored := *ot
	m.OwnershipTypes[ot.Name] = &stored
	return nil
}

func (m *CatalogDB) FindOwnershipType(_ context.Context, name string) (*entities.OwnershipType, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.OwnershipTypes[name], nil
}

func (m *CatalogDB) ListOwnershipTypes(_ context.Context) ([]entities.OwnershipType, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.OwnershipType, 0, len(m.OwnershipTypes))
	for _, ot := range m.OwnershipTypes {
		result = append(result, *ot)
	}
	// Sort by name for deterministic test results
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *CatalogDB) DeleteOwnershipType(_ context.Context, name string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.OwnershipTypes, name)
	return nil
}

// Audit methods.

func (m *CatalogDB) LogAction(_ context.Context, action string, urn entities.URN, details map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:      int64(len(m.Audit) + 1),
		Action:  action,
		URN:     urn,
		Details: details,
	})
	return nil
}

func (m *CatalogDB) FindAuditLog(_ context.Context, urn entities.URN) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for i := len(m.Audit) - 1; i >= 0; i-- {
		if m.Audit[i].URN == urn {
			result = append(result, m.Audit[i])
		}
	}
	return result, nil
}

func (m *CatalogDB) FindAuditLogByAction(_ context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for i := len(m.Audit) - 1; i >= 0 && (limit <= 0 || len(result) < limit); i-- {
		if m.Audit[i].Action == action {
			result = append(result, m.Audit[i])
		}
	}
	return result, nil
}
