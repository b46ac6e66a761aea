/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import (
	"fmt"
	"reflect"

	"github.com/suparena/entitymapper/converter"
	"github.com/suparena/entitymapper/entity"
)

// Strategy is the encoding rule applied to one field in one direction.
type Strategy int

const (
	StrategyUnsupported Strategy = iota
	StrategyScalar
	// StrategyWiden widens to Int64 on write and narrows back on read.
	StrategyWiden
	StrategyTimestamp
	StrategyNativeList
	StrategyListJSON
	StrategyListOfEligibleJSON
	StrategyMapJSON
	StrategyObjectJSON
)

var strategyNames = [...]string{
	StrategyUnsupported:        "unsupported",
	StrategyScalar:             "scalar",
	StrategyWiden:              "widen",
	StrategyTimestamp:          "timestamp",
	StrategyNativeList:         "native list",
	StrategyListJSON:           "list as json",
	StrategyListOfEligibleJSON: "list of eligible as json",
	StrategyMapJSON:            "map as json",
	StrategyObjectJSON:         "object as json",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// IsJSON reports whether the strategy stores the field as a JSON string.
func (s Strategy) IsJSON() bool {
	return s >= StrategyListJSON
}

func indirect(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

func isWidenKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return true
	}
	return false
}

func isJSONMap(t reflect.Type) bool {
	if t.Kind() != reflect.Map {
		return false
	}
	k, v := t.Key().Kind(), t.Elem().Kind()
	return (k == reflect.String && v == reflect.String) || (k == reflect.Int64 && v == reflect.Int64)
}

// resolveWrite picks the strategy for writing a field of declared type t
// with get markers m.
func resolveWrite(t reflect.Type, m Marker) Strategy {
	t = indirect(t)
	if converter.IsDateType(t) {
		return StrategyTimestamp
	}

	switch t.Kind() {
	case reflect.String, reflect.Int64, reflect.Bool, reflect.Float64:
		return StrategyScalar
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return StrategyWiden
	case reflect.Slice:
		switch {
		case m.Has(ListAsJSON):
			return StrategyListJSON
		case m.Has(ListOfJSONEligibleAsJSON):
			if isJSONEligible(indirect(t.Elem())) {
				return StrategyListOfEligibleJSON
			}
			return StrategyUnsupported
		case converter.IsNativeListElem(t.Elem()):
			return StrategyNativeList
		}
	case reflect.Map:
		if m.Has(MapAsJSON) && isJSONMap(t) {
			return StrategyMapJSON
		}
	}

	if m.Has(ObjectAsJSON) && isJSONEligible(t) {
		return StrategyObjectJSON
	}
	return StrategyUnsupported
}

// resolveRead picks the strategy for reading a stored value of kind k into
// a field of declared type t with set markers m. A String value carries no
// type information, so the JSON strategies are chosen from the markers.
func resolveRead(k entity.Kind, t reflect.Type, m Marker) Strategy {
	t = indirect(t)

	switch k {
	case entity.KindString:
		if t.Kind() == reflect.String {
			return StrategyScalar
		}
		switch {
		case m.Has(ListAsJSON) && t.Kind() == reflect.Slice:
			return StrategyListJSON
		case m.Has(ListOfJSONEligibleAsJSON) && t.Kind() == reflect.Slice && isJSONEligible(indirect(t.Elem())):
			return StrategyListOfEligibleJSON
		case m.Has(ObjectAsJSON) && isJSONEligible(t):
			return StrategyObjectJSON
		case m.Has(MapAsJSON) && isJSONMap(t):
			return StrategyMapJSON
		}
	case entity.KindInt64:
		if t.Kind() == reflect.Int64 {
			return StrategyScalar
		}
		if isWidenKind(t.Kind()) {
			return StrategyWiden
		}
	case entity.KindDouble:
		if t.Kind() == reflect.Float64 {
			return StrategyScalar
		}
	case entity.KindBoolean:
		if t.Kind() == reflect.Bool {
			return StrategyScalar
		}
	case entity.KindTimestamp:
		if converter.IsDateType(t) {
			return StrategyTimestamp
		}
	case entity.KindList:
		if t.Kind() == reflect.Slice && converter.IsNativeListElem(t.Elem()) {
			return StrategyNativeList
		}
	}
	return StrategyUnsupported
}
