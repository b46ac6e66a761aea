/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entity

import (
	"fmt"
	"time"
)

// Kind tags the payload carried by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt64
	KindDouble
	KindBoolean
	KindTimestamp
	KindList
)

var kindNames = [...]string{
	KindNull:      "null",
	KindString:    "string",
	KindInt64:     "int64",
	KindDouble:    "double",
	KindBoolean:   "boolean",
	KindTimestamp: "timestamp",
	KindList:      "list",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return KindNull, false
}

// TimestampPrecision is the resolution the store keeps for timestamps.
const TimestampPrecision = time.Microsecond

// Value is a tagged union of the kinds the entity store understands natively.
// The zero Value is Null.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
	l    []Value
}

// NullValue returns an explicit null.
func NullValue() Value { return Value{} }

func StringValue(s string) Value { return Value{kind: KindString, s: s} }

func Int64Value(i int64) Value { return Value{kind: KindInt64, i: i} }

func DoubleValue(f float64) Value { return Value{kind: KindDouble, f: f} }

func BooleanValue(b bool) Value { return Value{kind: KindBoolean, b: b} }

// TimestampValue stores t in UTC, truncated to TimestampPrecision.
func TimestampValue(t time.Time) Value {
	return Value{kind: KindTimestamp, t: t.UTC().Truncate(TimestampPrecision)}
}

// ListValue wraps vs. The slice is copied.
func ListValue(vs ...Value) Value {
	l := make([]Value, len(vs))
	copy(l, vs)
	return Value{kind: KindList, l: l}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

func (v Value) AsInt64() (int64, bool) { return v.i, v.kind == KindInt64 }

func (v Value) AsDouble() (float64, bool) { return v.f, v.kind == KindDouble }

func (v Value) AsBoolean() (bool, bool) { return v.b, v.kind == KindBoolean }

func (v Value) AsTimestamp() (time.Time, bool) { return v.t, v.kind == KindTimestamp }

// AsList returns a copy of the list elements.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	l := make([]Value, len(v.l))
	copy(l, v.l)
	return l, true
}

// Interface returns the payload as a plain Go value: nil, string, int64,
// float64, bool, time.Time or []any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt64:
		return v.i
	case KindDouble:
		return v.f
	case KindBoolean:
		return v.b
	case KindTimestamp:
		return v.t
	case KindList:
		out := make([]any, len(v.l))
		for i, e := range v.l {
			out[i] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether v and o carry the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == o.s
	case KindInt64:
		return v.i == o.i
	case KindDouble:
		return v.f == o.f
	case KindBoolean:
		return v.b == o.b
	case KindTimestamp:
		return v.t.Equal(o.t)
	case KindList:
		if len(v.l) != len(o.l) {
			return false
		}
		for i := range v.l {
			if !v.l[i].Equal(o.l[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindTimestamp:
		return v.t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
