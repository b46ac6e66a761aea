/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import (
	"reflect"
	"sort"
	"sync"
	"unicode"
)

// IDProperty is the property mapped to the entity key id.
const IDProperty = "id"

// field describes one property of a struct type.
type field struct {
	name       string
	goName     string
	index      []int
	typ        reflect.Type
	tagged     bool
	getMarkers Marker
	setMarkers Marker
	write      Strategy
}

// schema is the field descriptor table of a struct type. It is immutable
// once built.
type schema struct {
	typ    reflect.Type
	fields []*field
	id     *field
	// idValid is false when the id property is not int64 or *int64.
	idValid bool
	// unknownOptions lists tag options that matched no marker, per Go field.
	unknownOptions map[string][]string
	// conflicts lists names claimed by several fields at the same depth; none
	// of those fields is mapped.
	conflicts []string
}

// schemaCache holds one schema per struct type, built on first use.
type schemaCache struct {
	mu      sync.RWMutex
	schemas map[reflect.Type]*schema
}

func newSchemaCache() *schemaCache {
	return &schemaCache{schemas: make(map[reflect.Type]*schema)}
}

func (c *schemaCache) schemaFor(t reflect.Type) (*schema, bool) {
	c.mu.RLock()
	s, ok := c.schemas[t]
	c.mu.RUnlock()
	if ok {
		return s, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.schemas[t]; ok {
		return s, false
	}
	s = buildSchema(t)
	c.schemas[t] = s
	return s, true
}

func buildSchema(t reflect.Type) *schema {
	s := &schema{typ: t, unknownOptions: make(map[string][]string)}

	var all []*field
	collectFields(s, t, nil, &all)

	byName := make(map[string][]*field)
	var names []string
	for _, f := range all {
		if _, ok := byName[f.name]; !ok {
			names = append(names, f.name)
		}
		byName[f.name] = append(byName[f.name], f)
	}

	var kept []*field
	for _, name := range names {
		f, ok := dominantField(byName[name])
		if !ok {
			s.conflicts = append(s.conflicts, name)
			continue
		}
		kept = append(kept, f)
	}
	sort.Slice(kept, func(i, j int) bool { return indexLess(kept[i].index, kept[j].index) })

	for _, f := range kept {
		if f.name == IDProperty {
			s.id = f
			s.idValid = f.typ.Kind() == reflect.Int64 ||
				(f.typ.Kind() == reflect.Pointer && f.typ.Elem().Kind() == reflect.Int64)
			continue
		}
		f.write = resolveWrite(f.typ, f.getMarkers)
		s.fields = append(s.fields, f)
	}
	return s
}

// collectFields appends every candidate property of t, descending into
// embedded structs. Name conflicts are settled afterwards by dominantField.
func collectFields(s *schema, t reflect.Type, prefix []int, all *[]*field) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		embedded := sf.Anonymous && sf.Type.Kind() == reflect.Struct
		if !sf.IsExported() && !embedded {
			continue
		}
		tag := parseTag(sf.Tag.Get(TagName))
		if tag.skip {
			continue
		}

		index := make([]int, len(prefix)+1)
		copy(index, prefix)
		index[len(prefix)] = i

		if embedded && tag.name == "" {
			collectFields(s, sf.Type, index, all)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if len(tag.unknown) > 0 {
			s.unknownOptions[sf.Name] = tag.unknown
		}

		name := tag.name
		if name == "" {
			name = propertyName(sf.Name)
		}
		*all = append(*all, &field{
			name:       name,
			goName:     sf.Name,
			index:      index,
			typ:        sf.Type,
			tagged:     tag.name != "",
			getMarkers: tag.get,
			setMarkers: tag.set,
		})
	}
}

// dominantField picks the field a property name refers to, with the rules
// encoding/json uses: the shallowest field wins, a tagged name beats an
// untagged one at the same depth, and any other tie hides the name.
func dominantField(fs []*field) (*field, bool) {
	sort.SliceStable(fs, func(i, j int) bool {
		if len(fs[i].index) != len(fs[j].index) {
			return len(fs[i].index) < len(fs[j].index)
		}
		return fs[i].tagged && !fs[j].tagged
	})
	if len(fs) > 1 && len(fs[0].index) == len(fs[1].index) && fs[0].tagged == fs[1].tagged {
		return nil, false
	}
	return fs[0], true
}

func indexLess(a, b []int) bool {
	for k := 0; k < len(a) && k < len(b); k++ {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return len(a) < len(b)
}

// propertyName lower-cases the leading upper-case run of a Go field name:
// ID -> id, Name -> name, URLPath -> urlPath, UserID -> userID.
func propertyName(goName string) string {
	r := []rune(goName)
	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}
	switch {
	case n == 0:
		return goName
	case n == len(r):
		// all upper case, lower all of it
	case n > 1:
		n--
	}
	for i := 0; i < n; i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

// FieldInfo describes how one property is mapped.
type FieldInfo struct {
	Name       string
	GoName     string
	Type       reflect.Type
	GetMarkers Marker
	SetMarkers Marker
	// Write is the strategy used when writing; the read strategy also depends
	// on the stored value and is resolved per call.
	Write Strategy
	IsID  bool
}

// Describe returns the descriptor table for a struct type (or pointer to
// one), id first.
func (m *Mapper) Describe(t reflect.Type) []FieldInfo {
	t = indirect(t)
	if t.Kind() != reflect.Struct {
		return nil
	}
	s := m.schema(t)

	out := make([]FieldInfo, 0, len(s.fields)+1)
	if s.id != nil {
		out = append(out, FieldInfo{
			Name:       s.id.name,
			GoName:     s.id.goName,
			Type:       s.id.typ,
			GetMarkers: s.id.getMarkers,
			SetMarkers: s.id.setMarkers,
			IsID:       true,
		})
	}
	for _, f := range s.fields {
		out = append(out, FieldInfo{
			Name:       f.name,
			GoName:     f.goName,
			Type:       f.typ,
			GetMarkers: f.getMarkers,
			SetMarkers: f.setMarkers,
			Write:      f.write,
		})
	}
	return out
}
