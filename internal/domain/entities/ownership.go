package entities

import "time"

// OwnerKind says what kind of principal owns an entity.
type OwnerKind string

const (
	OwnerKindCorpUser  OwnerKind = "CORP_USER"
	OwnerKindCorpGroup OwnerKind = "CORP_GROUP"
)

// Owner links an entity to one of its owners.
type Owner struct {
	EntityURN     URN       `json:"entity_urn"`
	OwnerURN      URN       `json:"owner_urn"`
	Kind          OwnerKind `json:"kind"`
	OwnershipType string    `json:"ownership_type"`
	CreatedAt     time.Time `json:"created_at"`
}

// OwnershipType is a named category of ownership.
type OwnershipType struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Actor is the principal performing a catalog mutation.
type Actor struct {
	URN                 URN  `json:"urn"`
	CanManageGlossaries bool `json:"can_manage_glossaries"`
}
