/*
Package converter holds the pure conversions between Go scalars and store
values.

Scalars:

	WidenInt32 / NarrowInt64      int32 <-> int64, truncating on narrowing
	DateToTimestamp / TimestampToDate
	DateTimeToTimestamp / TimestampToDateTime   (strfmt.DateTime)

Every function maps nil to nil (or Null) and has no shared state.

Collections:

	vals := converter.FromList([]string{"a", "b"})
	tags, err := converter.ToList[string](vals)

Only element types of string or int64 kind are stored as native lists;
anything else is reported as unsupported and nothing is converted.
*/
package converter
