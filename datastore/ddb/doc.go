/*
Package ddb provides a DynamoDB implementation of datastore.EntityStore.

All kinds share one table with a string partition key PK and a string sort
key SK. An entity of kind "Player" with id 42 is stored as:

	PK         = "Player#42"
	SK         = "Player#42"
	EntityType = "Player"
	ID         = 42
	FieldKinds = {"name": "string", "rating": "int64", ...}
	name       = "Ann"
	rating     = 1500

Properties are top-level attributes (S, N, BOOL, NULL or L). FieldKinds
records the value kind of every property so that Int64 and Double, and
Timestamp (an RFC 3339 string) and String, are told apart on read.

Ids for incomplete keys come from a counter item per kind (PK "SEQ#Player")
incremented atomically with UpdateItem.

Inserts are conditioned on attribute_not_exists(PK) and updates on
attribute_exists(PK), so an insert never overwrites and an update never
creates. A failed condition is a ConditionFailedError whose cause is an
AlreadyExistsError or a NotFoundError.

Throttling and internal server errors are retried with a linearly growing
backoff:

	store := ddb.New(client, "entities",
	    ddb.WithMaxRetries(5),
	    ddb.WithRetryBackoff(50*time.Millisecond),
	)
*/
package ddb
