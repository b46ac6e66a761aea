/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"
)

// KindRegistry associates Go types with entity kind names.

var (
	kindRegistry = make(map[reflect.Type]string)
	kindMu       sync.RWMutex
)

func typeOf[T any]() reflect.Type {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// RegisterKind associates a Go type T with the entity kind name. T and *T
// share one registration.
func RegisterKind[T any](kind string) {
	t := typeOf[T]()

	kindMu.Lock()
	defer kindMu.Unlock()
	kindRegistry[t] = kind
}

// KindOf returns the kind registered for T, or T's type name when none is.
func KindOf[T any]() string {
	return KindOfType(typeOf[T]())
}

// KindOfType is KindOf for a reflect.Type. Pointer types resolve to their
// element type.
func KindOfType(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	kindMu.RLock()
	k, ok := kindRegistry[t]
	kindMu.RUnlock()
	if ok {
		return k
	}
	return t.Name()
}

// LookupKind reports the kind registered for T, if any.
func LookupKind[T any]() (string, bool) {
	t := typeOf[T]()

	kindMu.RLock()
	defer kindMu.RUnlock()
	k, ok := kindRegistry[t]
	return k, ok
}

// Register records both the kind of T and a factory creating *T under that
// kind, so entities of the kind can be loaded without naming T.
func Register[T any](kind string) {
	RegisterKind[T](kind)
	RegisterType(kind, func() any { return reflect.New(typeOf[T]()).Interface() })
}

// MustKind is KindOf that panics on an empty kind.
func MustKind[T any]() string {
	k := KindOf[T]()
	if k == "" {
		panic(fmt.Sprintf("registry: %s has no kind", typeOf[T]()))
	}
	return k
}
