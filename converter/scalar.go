/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package converter

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/suparena/entitymapper/entity"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	dateTimeType = reflect.TypeOf(strfmt.DateTime{})
)

// WidenInt32 converts a 32-bit integer to 64 bits. nil stays nil.
func WidenInt32(v *int32) *int64 {
	if v == nil {
		return nil
	}
	w := int64(*v)
	return &w
}

// NarrowInt64 converts a 64-bit integer to 32 bits. Values outside the int32
// range are truncated to their low 32 bits; no error is raised. nil stays nil.
func NarrowInt64(v *int64) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

// Int32Overflows reports whether NarrowInt64 would lose information for v.
func Int32Overflows(v int64) bool {
	return v < math.MinInt32 || v > math.MaxInt32
}

// DateToTimestamp converts t to a store timestamp. nil becomes Null.
func DateToTimestamp(t *time.Time) entity.Value {
	if t == nil {
		return entity.NullValue()
	}
	return entity.TimestampValue(*t)
}

// TimestampToDate converts a store timestamp back to time.Time. Null and
// non-timestamp values become nil.
func TimestampToDate(v entity.Value) *time.Time {
	ts, ok := v.AsTimestamp()
	if !ok {
		return nil
	}
	return &ts
}

// DateTimeToTimestamp is DateToTimestamp for strfmt.DateTime.
func DateTimeToTimestamp(dt *strfmt.DateTime) entity.Value {
	if dt == nil {
		return entity.NullValue()
	}
	t := time.Time(*dt)
	return DateToTimestamp(&t)
}

// TimestampToDateTime is TimestampToDate for strfmt.DateTime.
func TimestampToDateTime(v entity.Value) *strfmt.DateTime {
	t := TimestampToDate(v)
	if t == nil {
		return nil
	}
	dt := strfmt.DateTime(*t)
	return &dt
}

// IsDateType reports whether t is one of the supported date types.
func IsDateType(t reflect.Type) bool {
	return t == timeType || t == dateTimeType
}

// ScalarToValue converts a non-pointer scalar to its store value. Narrow
// integer kinds are widened to Int64.
func ScalarToValue(rv reflect.Value) (entity.Value, error) {
	switch rv.Kind() {
	case reflect.String:
		return entity.StringValue(rv.String()), nil
	case reflect.Int64, reflect.Int, reflect.Int32, reflect.Int16, reflect.Int8:
		return entity.Int64Value(rv.Int()), nil
	case reflect.Bool:
		return entity.BooleanValue(rv.Bool()), nil
	case reflect.Float64:
		return entity.DoubleValue(rv.Float()), nil
	case reflect.Struct:
		switch rv.Type() {
		case timeType:
			t := rv.Interface().(time.Time)
			return DateToTimestamp(&t), nil
		case dateTimeType:
			dt := rv.Interface().(strfmt.DateTime)
			return DateTimeToTimestamp(&dt), nil
		}
	}
	return entity.Value{}, fmt.Errorf("no scalar conversion for %s", rv.Type())
}

// SetTimestamp stores ts into dst, which must be a settable time.Time or
// strfmt.DateTime.
func SetTimestamp(dst reflect.Value, ts entity.Value) error {
	switch dst.Type() {
	case timeType:
		t := TimestampToDate(ts)
		if t == nil {
			return fmt.Errorf("value %s is not a timestamp", ts)
		}
		dst.Set(reflect.ValueOf(*t))
	case dateTimeType:
		dt := TimestampToDateTime(ts)
		if dt == nil {
			return fmt.Errorf("value %s is not a timestamp", ts)
		}
		dst.Set(reflect.ValueOf(*dt))
	default:
		return fmt.Errorf("%s is not a date type", dst.Type())
	}
	return nil
}
