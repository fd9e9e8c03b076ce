package entities

import "time"

// LineageType defines how data moves between two entities.
type LineageType string

const (
	LineageDownstreamOf LineageType = "DownstreamOf"
	LineageProduces     LineageType = "Produces"
	LineageConsumes     LineageType = "Consumes"
)

// LineageTypes lists the supported lineage types.
var LineageTypes = []LineageType{LineageDownstreamOf, LineageProduces, LineageConsumes}

// IsValid reports whether t is a supported lineage type.
func (t LineageType) IsValid() bool {
	for _, lt := range LineageTypes {
		if lt == t {
			return true
		}
	}
	return false
}

// LineageEdge is a directed edge from an upstream entity to a downstream one.
type LineageEdge struct {
	ID            string      `json:"id"`
	UpstreamURN   URN         `json:"upstream_urn"`
	DownstreamURN URN         `json:"downstream_urn"`
	Type          LineageType `json:"type"`
	CreatedAt     time.Time   `json:"created_at"`
}
