package registry

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ersonp/catalog-core/internal/domain/entities"
)

// Registry is an ordered mapping from entity type to plugin.
// It is not safe for concurrent use until Freeze has been called.
type Registry struct {
	plugins []Plugin
	byType  map[entities.EntityType]Plugin
	byPath  map[string]entities.EntityType // keyed by lowercased path name
	frozen  bool
}

// New creates an empty, open registry.
func New() *Registry {
	return &Registry{
		byType: make(map[entities.EntityType]Plugin),
		byPath: make(map[string]entities.EntityType),
	}
}

// Register adds p under its own type.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("%w: nil plugin", ErrInvalidPlugin)
	}

	t, path, err := pluginKeys(p)
	if err != nil {
		return err
	}
	if r.frozen {
		return fmt.Errorf("registering %q: %w", t, ErrRegistryFrozen)
	}
	if !t.IsValid() {
		return fmt.Errorf("%w: unknown entity type %q", ErrInvalidPlugin, t)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("%w: type %q has an empty path name", ErrInvalidPlugin, t)
	}

	if _, exists := r.byType[t]; exists {
		return &DuplicateRegistrationError{Type: t, Existing: t, Field: "type", Value: string(t)}
	}
	pathKey := strings.ToLower(path)
	if owner, exists := r.byPath[pathKey]; exists {
		return &DuplicateRegistrationError{Type: t, Existing: owner, Field: "path", Value: path}
	}

	r.plugins = append(r.plugins, p)
	r.byType[t] = p
	r.byPath[pathKey] = t
	return nil
}

// pluginKeys reads the type and path name of p. A typed nil plugin panics
// on first use; that is reported as ErrInvalidPlugin.
func pluginKeys(p Plugin) (t entities.EntityType, path string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %T: %v", ErrInvalidPlugin, p, rec)
		}
	}()
	return p.Type(), p.PathName(), nil
}

// MustRegister registers each plugin in order and panics on the first error.
// Intended for startup wiring where a failure is a programming error.
func (r *Registry) MustRegister(plugins ...Plugin) {
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
}

// Freeze makes the registry read-only. It cannot be undone.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.plugins)
}

// GetEntity returns the plugin registered for t.
func (r *Registry) GetEntity(t entities.EntityType) (Plugin, error) {
	p, ok := r.byType[t]
	if !ok {
		return nil, &UnknownEntityTypeError{Type: t}
	}
	return p, nil
}

// GetEntities returns all plugins in registration order.
// The returned slice is a copy.
func (r *Registry) GetEntities() []Plugin {
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// GetSearchEntityTypes returns the search-enabled types in registration order.
func (r *Registry) GetSearchEntityTypes() []entities.EntityType {
	return r.typesWhere(Plugin.IsSearchEnabled)
}

// GetBrowseEntityTypes returns the browse-enabled types in registration order.
func (r *Registry) GetBrowseEntityTypes() []entities.EntityType {
	return r.typesWhere(Plugin.IsBrowseEnabled)
}

// GetLineageEntityTypes returns the lineage-enabled types in registration order.
func (r *Registry) GetLineageEntityTypes() []entities.EntityType {
	return r.typesWhere(Plugin.IsLineageEnabled)
}

// GetDefaultSearchEntityType returns the first search-enabled type.
func (r *Registry) GetDefaultSearchEntityType() (entities.EntityType, error) {
	types := r.GetSearchEntityTypes()
	if len(types) == 0 {
		return "", &UnknownEntityTypeError{Via: "capability", Key: "search"}
	}
	return types[0], nil
}

func (r *Registry) typesWhere(pred func(Plugin) bool) []entities.EntityType {
	var out []entities.EntityType
	for _, p := range r.plugins {
		if pred(p) {
			out = append(out, p.Type())
		}
	}
	return out
}

// GetPathName returns the URL path segment for t.
func (r *Registry) GetPathName(t entities.EntityType) (string, error) {
	p, err := r.GetEntity(t)
	if err != nil {
		return "", err
	}
	return p.PathName(), nil
}

// GetCollectionName returns the plural label for t.
func (r *Registry) GetCollectionName(t entities.EntityType) (string, error) {
	p, err := r.GetEntity(t)
	if err != nil {
		return "", err
	}
	return p.CollectionName(), nil
}

// GetEntityName returns the singular label for t.
func (r *Registry) GetEntityName(t entities.EntityType) (string, error) {
	p, err := r.GetEntity(t)
	if err != nil {
		return "", err
	}
	return p.EntityName(), nil
}

// GetIcon returns the icon name for t.
func (r *Registry) GetIcon(t entities.EntityType) (string, error) {
	p, err := r.GetEntity(t)
	if err != nil {
		return "", err
	}
	return p.Icon(), nil
}

// GetEntityURL returns the canonical path of an entity: /<pathName>/<escaped urn>.
func (r *Registry) GetEntityURL(t entities.EntityType, urn entities.URN) (string, error) {
	path, err := r.GetPathName(t)
	if err != nil {
		return "", err
	}
	return "/" + path + "/" + url.PathEscape(string(urn)), nil
}

// ParseEntityURL is the inverse of GetEntityURL.
func (r *Registry) ParseEntityURL(raw string) (entities.EntityType, entities.URN, error) {
	path, escaped, ok := strings.Cut(strings.TrimPrefix(raw, "/"), "/")
	if !ok || escaped == "" {
		return "", "", entities.NewValidationError("url", fmt.Sprintf("%q is not an entity url", raw))
	}
	t, err := r.GetTypeFromPathName(path)
	if err != nil {
		return "", "", err
	}
	unescaped, err := url.PathUnescape(strings.TrimSuffix(escaped, "/"))
	if err != nil {
		return "", "", entities.NewValidationError("url", err.Error())
	}
	urn, err := entities.ParseURN(unescaped)
	if err != nil {
		return "", "", err
	}
	return t, urn, nil
}

// GetTypeFromPathName resolves a URL path segment to its entity type.
// Matching is case-insensitive.
func (r *Registry) GetTypeFromPathName(path string) (entities.EntityType, error) {
	t, ok := r.byPath[strings.ToLower(strings.TrimSpace(path))]
	if !ok {
		return "", &UnknownEntityTypeError{Via: "path", Key: path}
	}
	return t, nil
}

// ResolveType accepts either a type name or a URL path name, both
// case-insensitively. Type names win when a string could be either.
func (r *Registry) ResolveType(name string) (entities.EntityType, error) {
	if t, ok := entities.ParseEntityType(name); ok {
		if _, err := r.GetEntity(t); err == nil {
			return t, nil
		}
	}
	return r.GetTypeFromPathName(name)
}

// GetTypeOrDefaultFromPathName is GetTypeFromPathName with a fallback.
func (r *Registry) GetTypeOrDefaultFromPathName(path string, def entities.EntityType) entities.EntityType {
	t, err := r.GetTypeFromPathName(path)
	if err != nil {
		return def
	}
	return t
}

// GetTypeFromURN returns the registered type named by urn's type segment.
func (r *Registry) GetTypeFromURN(urn entities.URN) (entities.EntityType, error) {
	t := urn.EntityType()
	if _, err := r.GetEntity(t); err != nil {
		return "", &UnknownEntityTypeError{Type: t, Via: "urn", Key: string(urn)}
	}
	return t, nil
}

// GetDisplayName returns the display name of e according to its type's plugin.
func (r *Registry) GetDisplayName(e *entities.Entity) (string, error) {
	p, err := r.GetEntity(e.Type)
	if err != nil {
		return "", err
	}
	return p.DisplayName(e), nil
}

// RenderPreview renders e's preview, filling in the URL and icon
// when the plugin leaves them empty.
func (r *Registry) RenderPreview(e *entities.Entity) (Preview, error) {
	p, err := r.GetEntity(e.Type)
	if err != nil {
		return Preview{}, err
	}

	preview := p.RenderPreview(e)
	if preview.URL == "" {
		preview.URL = "/" + p.PathName() + "/" + url.PathEscape(string(e.URN))
	}
	if preview.Icon == "" {
		preview.Icon = p.Icon()
	}
	return preview, nil
}
