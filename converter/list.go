/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package converter

import (
	"fmt"
	"reflect"

	"github.com/suparena/entitymapper/entity"
	"github.com/suparena/entitymapper/errors"
)

// Element is the constraint for lists stored as native store lists.
type Element interface {
	~string | ~int64
}

// IsNativeListElem reports whether a slice with element type t can be
// stored as a native list.
func IsNativeListElem(t reflect.Type) bool {
	return t.Kind() == reflect.String || t.Kind() == reflect.Int64
}

// ListToValues converts a slice of string or int64 kind element by element.
// Any other element type fails the whole conversion. A nil or empty slice
// yields nil.
func ListToValues(list reflect.Value) ([]entity.Value, error) {
	if list.Kind() != reflect.Slice {
		return nil, errors.NewUnsupportedTypeError("", list.Type().String(), "not a slice")
	}
	if !IsNativeListElem(list.Type().Elem()) {
		return nil, errors.NewUnsupportedTypeError("", list.Type().String(), "list elements must be string or int64")
	}
	if list.Len() == 0 {
		return nil, nil
	}

	out := make([]entity.Value, list.Len())
	for i := 0; i < list.Len(); i++ {
		v, err := ScalarToValue(list.Index(i))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// ValuesToList is the inverse of ListToValues for a slice type of string or
// int64 kind. Nil or empty input yields a nil slice of sliceType.
func ValuesToList(vals []entity.Value, sliceType reflect.Type) (reflect.Value, error) {
	if sliceType.Kind() != reflect.Slice || !IsNativeListElem(sliceType.Elem()) {
		return reflect.Value{}, errors.NewUnsupportedTypeError("", sliceType.String(), "list elements must be string or int64")
	}
	if len(vals) == 0 {
		return reflect.Zero(sliceType), nil
	}

	out := reflect.MakeSlice(sliceType, len(vals), len(vals))
	for i, v := range vals {
		elem := out.Index(i)
		switch elem.Kind() {
		case reflect.String:
			s, ok := v.AsString()
			if !ok {
				return reflect.Value{}, fmt.Errorf("element %d: expected string, got %s", i, v.Kind())
			}
			elem.SetString(s)
		case reflect.Int64:
			n, ok := v.AsInt64()
			if !ok {
				return reflect.Value{}, fmt.Errorf("element %d: expected int64, got %s", i, v.Kind())
			}
			elem.SetInt(n)
		}
	}
	return out, nil
}

// FromList converts items to store values.
func FromList[T Element](items []T) []entity.Value {
	vals, _ := ListToValues(reflect.ValueOf(items))
	return vals
}

// ToList converts store values to a typed slice.
func ToList[T Element](vals []entity.Value) ([]T, error) {
	rv, err := ValuesToList(vals, reflect.TypeOf([]T(nil)))
	if err != nil {
		return nil, err
	}
	return rv.Interface().([]T), nil
}
