package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/ports"
	"github.com/ersonp/catalog-core/internal/domain/services"
)

// LineageHandler handles lineage operations.
type LineageHandler struct {
	service   *services.LineageService
	catalogDB ports.CatalogDB
}

// NewLineageHandler creates a new LineageHandler.
func NewLineageHandler(service *services.LineageService, catalogDB ports.CatalogDB) *LineageHandler {
	return &LineageHandler{
		service:   service,
		catalogDB: catalogDB,
	}
}

// LineageListOptions configures lineage listing behavior.
type LineageListOptions struct {
	Depth int // Graph traversal depth (default 1)
}

// LineageEdgeInfo is an edge with the names of the entities on each end.
type LineageEdgeInfo struct {
	Edge           entities.LineageEdge `json:"edge"`
	UpstreamName   string               `json:"upstream_name,omitempty"`
	DownstreamName string               `json:"downstream_name,omitempty"`
}

// LineageListResult contains the result of listing lineage.
type LineageListResult struct {
	URN         entities.URN      `json:"urn"`
	Edges       []LineageEdgeInfo `json:"edges"`
	Upstreams   []entities.URN    `json:"upstreams"`
	Downstreams []entities.URN    `json:"downstreams"`
}

// HandleCreate creates a lineage edge from upstream to downstream.
func (h *LineageHandler) HandleCreate(ctx context.Context, upstream, lineageType, downstream string) (*entities.LineageEdge, error) {
	lt, err := parseLineageType(lineageType)
	if err != nil {
		return nil, err
	}
	up, err := entities.ParseURN(upstream)
	if err != nil {
		return nil, err
	}
	down, err := entities.ParseURN(downstream)
	if err != nil {
		return nil, err
	}
	return h.service.Create(ctx, up, lt, down)
}

// HandleDelete removes an edge by ID.
func (h *LineageHandler) HandleDelete(ctx context.Context, id string) error {
	return h.service.Delete(ctx, id)
}

// HandleList returns the direct edges of an entity and everything
// reachable up and down stream within the requested depth.
func (h *LineageHandler) HandleList(ctx context.Context, rawURN string, opts LineageListOptions) (*LineageListResult, error) {
	urn, err := entities.ParseURN(rawURN)
	if err != nil {
		return nil, err
	}

	edges, err := h.service.List(ctx, urn)
	if err != nil {
		return nil, fmt.Errorf("listing lineage: %w", err)
	}

	upstreams, err := h.service.Upstreams(ctx, urn, opts.Depth)
	if err != nil {
		return nil, err
	}
	downstreams, err := h.service.Downstreams(ctx, urn, opts.Depth)
	if err != nil {
		return nil, err
	}

	infos, err := h.withNames(ctx, edges)
	if err != nil {
		return nil, err
	}

	return &LineageListResult{
		URN:         urn,
		Edges:       infos,
		Upstreams:   upstreams,
		Downstreams: downstreams,
	}, nil
}

// withNames attaches entity names to edges using one batch lookup.
func (h *LineageHandler) withNames(ctx context.Context, edges []entities.LineageEdge) ([]LineageEdgeInfo, error) {
	urnSet := make(map[entities.URN]bool)
	for _, e := range edges {
		urnSet[e.UpstreamURN] = true
		urnSet[e.DownstreamURN] = true
	}
	urns := make([]entities.URN, 0, len(urnSet))
	for urn := range urnSet {
		urns = append(urns, urn)
	}

	names := make(map[entities.URN]string, len(urns))
	if len(urns) > 0 {
		found, err := h.catalogDB.FindEntitiesByURNs(ctx, urns)
		if err != nil {
			return nil, fmt.Errorf("fetching lineage entities: %w", err)
		}
		for _, e := range found {
			names[e.URN] = e.Name
		}
	}

	infos := make([]LineageEdgeInfo, len(edges))
	for i, e := range edges {
		infos[i] = LineageEdgeInfo{
			Edge:           e,
			UpstreamName:   names[e.UpstreamURN],
			DownstreamName: names[e.DownstreamURN],
		}
	}
	return infos, nil
}

// parseLineageType matches a lineage type case-insensitively.
func parseLineageType(s string) (entities.LineageType, error) {
	for _, lt := range entities.LineageTypes {
		if strings.EqualFold(string(lt), strings.TrimSpace(s)) {
			return lt, nil
		}
	}
	return "", entities.NewValidationError("type", fmt.Sprintf("invalid lineage type %q (valid: %v)", s, entities.LineageTypes))
}
