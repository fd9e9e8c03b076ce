package entities

import "time"

// Audit actions recorded by the services.
const (
	AuditEntityCreate  = "entity.create"
	AuditEntityDelete  = "entity.delete"
	AuditLineageCreate = "lineage.create"
	AuditLineageDelete = "lineage.delete"
	AuditOwnerAdd      = "owner.add"
)

// AuditEntry represents a logged action in the catalog.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	URN       URN            `json:"urn,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
