/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import (
	"reflect"
	"strings"
)

// TagName is the struct tag read by the mapper.
const TagName = "entity"

// Marker selects how a field is encoded. Markers are attached to one accessor:
// the get side is consulted when writing an entity, the set side when reading
// one.
type Marker uint8

const (
	// IgnoreOnWrite excludes the field from the direction it is attached to.
	IgnoreOnWrite Marker = 1 << iota
	// ListAsJSON stores a whole slice as one JSON string.
	ListAsJSON
	// ListOfJSONEligibleAsJSON stores a slice of JSONEligible values as one JSON string.
	ListOfJSONEligibleAsJSON
	// MapAsJSON stores a map[string]string or map[int64]int64 as one JSON string.
	MapAsJSON
	// ObjectAsJSON stores a single JSONEligible value as one JSON string.
	ObjectAsJSON
)

var markerOptions = []struct {
	name   string
	marker Marker
}{
	{"noinsert", IgnoreOnWrite},
	{"listjson", ListAsJSON},
	{"listobjjson", ListOfJSONEligibleAsJSON},
	{"mapjson", MapAsJSON},
	{"objjson", ObjectAsJSON},
}

func (m Marker) Has(x Marker) bool { return m&x != 0 }

func (m Marker) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, o := range markerOptions {
		if m.Has(o.marker) {
			parts = append(parts, o.name)
		}
	}
	return strings.Join(parts, "|")
}

func lookupMarker(name string) (Marker, bool) {
	for _, o := range markerOptions {
		if o.name == name {
			return o.marker, true
		}
	}
	return 0, false
}

// JSONEligible is implemented by types that may be stored as a JSON string
// through the objjson and listobjjson markers. The method is never called.
type JSONEligible interface {
	JSONEligible()
}

var jsonEligibleType = reflect.TypeOf((*JSONEligible)(nil)).Elem()

func isJSONEligible(t reflect.Type) bool {
	if t.Implements(jsonEligibleType) {
		return true
	}
	return t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(jsonEligibleType)
}

// fieldTag is a parsed `entity:"name,opt,get:opt,set:opt"` tag.
type fieldTag struct {
	name    string
	skip    bool
	get     Marker
	set     Marker
	unknown []string
}

func parseTag(tag string) fieldTag {
	var ft fieldTag
	if tag == "-" {
		ft.skip = true
		return ft
	}
	parts := strings.Split(tag, ",")
	ft.name = strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		getSide, setSide := true, true
		switch {
		case strings.HasPrefix(p, "get:"):
			p, setSide = strings.TrimPrefix(p, "get:"), false
		case strings.HasPrefix(p, "set:"):
			p, getSide = strings.TrimPrefix(p, "set:"), false
		}
		m, ok := lookupMarker(p)
		if !ok {
			ft.unknown = append(ft.unknown, p)
			continue
		}
		if getSide {
			ft.get |= m
		}
		if setSide {
			ft.set |= m
		}
	}
	return ft
}
