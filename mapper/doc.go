/*
Package mapper converts Go structs to and from entity.Entity values.

Each exported field of a struct is a property. Its name is taken from the
`entity` struct tag, or derived from the Go field name with the leading
upper-case run lowered (UserID -> userID). The property named "id" is not
stored; it is mapped to the entity key id and must be an int64 or *int64.
A nil pointer and zero are both a null id.

Fields of embedded struct values, exported or not, are promoted with the
encoding/json rules: a shallower field shadows a deeper one of the same
name, a tagged name beats an untagged one at equal depth, and any other tie
drops the name (and logs it). Embedded pointers are not followed.

Tag options select an encoding. An option applies to both directions unless
prefixed with get: (writing an entity) or set: (reading one):

	type Match struct {
		ID      *int64            `entity:"id"`
		Home    string            `entity:"home"`
		Score   int32             `entity:"score"`
		Played  *time.Time        `entity:"played"`
		Tags    []string          `entity:"tags"`
		Rounds  []Round           `entity:"rounds,listobjjson"`
		Labels  map[string]string `entity:"labels,mapjson"`
		Created int64             `entity:"created,get:noinsert"`
	}

Options:

	noinsert     skip the field in that direction
	listjson     store a whole slice as one JSON string
	listobjjson  store a slice of JSONEligible values as one JSON string
	mapjson      store map[string]string or map[int64]int64 as JSON
	objjson      store a single JSONEligible value as JSON

Narrow integer kinds are widened to Int64 on write and narrowed on read,
truncating in two's complement unless WithStrictNarrowing is set.
time.Time and strfmt.DateTime become Timestamp values at microsecond
precision in UTC.

A field that cannot be converted never fails the call. It is skipped and
reported in the Diagnostics returned alongside the result, and logged.
*/
package mapper
