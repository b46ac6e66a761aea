/*
Package entitymapper stores plain Go structs in a schemaless entity store.

The library is layered:
  - entity: the store's value model (Entity, Key, Value)
  - mapper: reflection-driven conversion between structs and entities
  - datastore: the EntityStore backend interface and typed repositories
  - datastore/ddb, datastore/mock: DynamoDB and in-memory backends
  - registry: kind names per Go type and factories per kind

Key Features:
  - Per-field encoding chosen from the declared type and `entity` tag options
  - Lists, maps and nested objects stored as JSON strings on request
  - Field conversion problems reported as diagnostics, never as panics
  - Type-safe repositories using Go generics
  - Semantic error types for better error handling

Basic Usage:

	type Player struct {
	    ID     *int64   `entity:"id"`
	    Name   string   `entity:"name"`
	    Rating int32    `entity:"rating"`
	    Tags   []string `entity:"tags"`
	}

	registry.Register[Player]("Player")

	cfg, _ := config.Load()
	storage, _ := entitymapper.Open(ctx, cfg)

	players := entitymapper.GetDataStore[Player](storage)
	id, err := players.Add(ctx, &Player{Name: "Ann", Rating: 1500})
	p, err := players.FindByID(ctx, id)

	// without naming the type
	obj, err := storage.Load(ctx, entity.NewKeyFactory("Player").NewKey(id))
*/
package entitymapper
