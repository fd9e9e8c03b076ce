package plugins

import (
	"github.com/ersonp/catalog-core/internal/domain/entities"
	"github.com/ersonp/catalog-core/internal/domain/registry"
)

// UserEntity describes people (corp users).
type UserEntity struct {
	base
}

// NewUserEntity creates the user plugin.
func NewUserEntity() *UserEntity {
	return &UserEntity{base{
		typ:        entities.EntityTypeCorpUser,
		path:       "user",
		collection: "People",
		name:       "Person",
		icon:       "UserOutlined",
		search:     true,
	}}
}

// DisplayName prefers the editable display name, then the full name, then the username.
func (p *UserEntity) DisplayName(e *entities.Entity) string {
	return firstNonEmpty(e.Property(entities.PropDisplayName), e.Property(entities.PropFullName), e.Name, e.URN.Key())
}

func (p *UserEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e),
		fact("Username", e.URN.Key()),
		fact("Title", e.Property("title")),
		fact("Email", e.Property("email")),
	)
}

// GroupEntity describes groups of people.
type GroupEntity struct {
	base
}

// NewGroupEntity creates the group plugin.
func NewGroupEntity() *GroupEntity {
	return &GroupEntity{base{
		typ:        entities.EntityTypeCorpGroup,
		path:       "group",
		collection: "Groups",
		name:       "Group",
		icon:       "TeamOutlined",
		search:     true,
	}}
}

func (p *GroupEntity) RenderPreview(e *entities.Entity) registry.Preview {
	return p.render(e, p.DisplayName(e), fact("Email", e.Property("email")))
}
