/*
Package datastore defines the persistence interfaces of entitymapper and the
typed repository built on them.

EntityStore is the schemaless backend, working on entity.Entity values:

	type EntityStore interface {
	    Put(ctx context.Context, e *entity.Entity) (entity.Key, error)
	    Get(ctx context.Context, key entity.Key) (*entity.Entity, error)
	    Delete(ctx context.Context, key entity.Key) error
	    Count(ctx context.Context, kind string) (int, error)
	}

DataStore[T] is the typed CRUD surface for one Go type. Repository[T]
implements it by converting objects with a mapper.Mapper and delegating to
an EntityStore:

	repo := datastore.NewRepository[Player](store, mapper.New(), "Player")
	id, err := repo.Add(ctx, &Player{Name: "Ann"})
	p, err := repo.FindByID(ctx, id)

Implementations of EntityStore:
  - ddb: DynamoDB single-table implementation
  - mock: In-memory implementation for testing
*/
package datastore
