/*
Package entity defines the value model of the schemaless entity store.

An Entity is a Key plus an ordered set of named Values. A Value is a tagged
union over the kinds the store understands natively:

	Null | String | Int64 | Double | Boolean | Timestamp | List

There is no map or nested-entity kind; maps and nested objects are written
as String values holding JSON text.

Keys are created by a KeyFactory, either incomplete (the store assigns the
id on write) or complete:

	kf := entity.NewKeyFactory("Player")
	b := entity.NewBuilder(kf.NewIncompleteKey())
	b.Set("name", entity.StringValue("Ann")).SetNull("nickname")
	e := b.Build()
*/
package entity
