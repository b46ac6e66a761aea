/*
Package registry maps Go types to entity kinds and kinds back to types.

Kind Registry:
Associates a Go type with the kind name its entities are stored under:

	registry.RegisterKind[User]("User")
	kind := registry.KindOf[User]() // "User"

Types without a registration use their Go type name.

Type Registry:
Maps kind names to factories, enabling loads where only the key is known:

	registry.RegisterType("User", func() any {
	    return &User{}
	})
	obj, err := registry.NewInstance("User")

Register does both in one call.

The registry is thread-safe and should be populated during initialization,
typically in init() functions.
*/
package registry
