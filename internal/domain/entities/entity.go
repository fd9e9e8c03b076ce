package entities

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Well-known property keys used by plugins and services.
const (
	PropDisplayName   = "displayName"
	PropFullName      = "fullName"
	PropQualifiedName = "qualifiedName"
	PropEnv           = "env"
	PropTermSource    = "termSource"
)

// Entity is a single catalog object. Type-specific attributes that the
// catalog does not model explicitly go into Properties.
type Entity struct {
	URN            URN               `json:"urn"`
	Type           EntityType        `json:"type"`
	Name           string            `json:"name"`
	NormalizedName string            `json:"normalized_name"` // Case-folded for matching
	Description    string            `json:"description,omitempty"`
	Platform       string            `json:"platform,omitempty"`
	ParentURN      URN               `json:"parent_urn,omitempty"`
	Properties     map[string]string `json:"properties,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Property returns a property value or "" when unset.
func (e *Entity) Property(key string) string {
	if e.Properties == nil {
		return ""
	}
	return e.Properties[key]
}

// SetProperty sets a property, allocating the map on first use.
func (e *Entity) SetProperty(key, value string) {
	if e.Properties == nil {
		e.Properties = make(map[string]string)
	}
	e.Properties[key] = value
}

var folder = cases.Fold()

// NormalizeName case-folds a name for case-insensitive matching.
func NormalizeName(name string) string {
	return folder.String(strings.TrimSpace(name))
}
