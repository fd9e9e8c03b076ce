package registry

import (
	"errors"
	"fmt"

	"github.com/ersonp/catalog-core/internal/domain/entities"
)

var (
	// ErrDuplicateRegistration is returned when a type, URN name or path is already taken.
	ErrDuplicateRegistration = errors.New("entity type already registered")

	// ErrUnknownEntityType is returned when looking up a type that was never registered.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrRegistryFrozen is returned by Register after Freeze.
	ErrRegistryFrozen = errors.New("entity registry is frozen")

	// ErrInvalidPlugin is returned for plugins that cannot be registered at all.
	ErrInvalidPlugin = errors.New("invalid entity plugin")
)

// DuplicateRegistrationError reports a registration colliding with an existing plugin.
type DuplicateRegistrationError struct {
	Type     entities.EntityType // type being registered
	Existing entities.EntityType // type already holding the key
	Field    string              // "type" or "path"
	Value    string
}

func (e *DuplicateRegistrationError) Error() string {
	if e.Field == "type" {
		return fmt.Sprintf("entity registry: type %q already registered", e.Type)
	}
	return fmt.Sprintf("entity registry: %s %q of type %q already used by type %q", e.Field, e.Value, e.Type, e.Existing)
}

func (e *DuplicateRegistrationError) Is(target error) bool {
	return target == ErrDuplicateRegistration
}

// UnknownEntityTypeError reports a lookup for an unregistered type.
type UnknownEntityTypeError struct {
	Type entities.EntityType
	// Via records how the lookup was keyed when it was not by type, e.g. "path".
	Via string
	Key string
}

func (e *UnknownEntityTypeError) Error() string {
	if e.Via != "" {
		return fmt.Sprintf("entity registry: no type registered for %s %q", e.Via, e.Key)
	}
	return fmt.Sprintf("entity registry: no plugin registered for type %q", e.Type)
}

func (e *UnknownEntityTypeError) Is(target error) bool {
	return target == ErrUnknownEntityType
}
