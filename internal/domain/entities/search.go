package entities

// SearchDocument is the indexed form of an entity.
type SearchDocument struct {
	URN       URN        `json:"urn"`
	Type      EntityType `json:"type"`
	Name      string     `json:"name"`
	Text      string     `json:"text"` // Text the embedding was computed from
	Embedding []float32  `json:"embedding,omitempty"`
}

// SearchHit is a single semantic search match.
type SearchHit struct {
	URN   URN        `json:"urn"`
	Type  EntityType `json:"type"`
	Name  string     `json:"name"`
	Score float32    `json:"score"`
}
