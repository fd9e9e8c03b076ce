/*
Package registry maps catalog entity types to the plugins that describe them.

Generic catalog code (listing, search, previews, URL building, lineage) asks the
registry for the plugin of an entity's type instead of switching on the type:

	reg := registry.New()
	reg.MustRegister(datasetPlugin, userPlugin, tagPlugin)
	reg.Freeze()

	p, err := reg.GetEntity(entities.EntityTypeDataset)
	if err != nil {
	    // errors.Is(err, registry.ErrUnknownEntityType)
	}
	url := reg.GetEntityURL(entity.Type, entity.URN)

A Registry has two phases. While open it accepts registrations; Freeze moves it
to read-only for good. Registering the same type twice is rejected with a
DuplicateRegistrationError. A frozen registry is never mutated again, so it can
be shared between goroutines without locking. Populate and freeze it before
handing it out.
*/
package registry
