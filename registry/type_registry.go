/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Factory returns a new pointer to the struct stored under a kind.
type Factory func() any

// typeRegistry holds the mapping from a kind name (like "Player", "Match") to its factory.
var (
	typeRegistry = make(map[string]Factory)
	typeMu       sync.RWMutex
)

// RegisterType registers a factory for a given kind.
// If a factory is already registered for the kind, it panics to prevent accidental overrides.
func RegisterType(kind string, fn Factory) {
	typeMu.Lock()
	defer typeMu.Unlock()
	if _, exists := typeRegistry[kind]; exists {
		panic(fmt.Sprintf("type registry: type with kind %q already registered", kind))
	}
	typeRegistry[kind] = fn
}

// GetFactory returns the registered factory for the given kind.
// If no factory is registered, it returns an error.
func GetFactory(kind string) (Factory, error) {
	typeMu.RLock()
	defer typeMu.RUnlock()
	fn, ok := typeRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("type registry: no type registered for kind %q", kind)
	}
	return fn, nil
}

// NewInstance creates a new value for the given kind.
func NewInstance(kind string) (any, error) {
	fn, err := GetFactory(kind)
	if err != nil {
		return nil, err
	}
	return fn(), nil
}

// Kinds lists the registered kinds in order.
func Kinds() []string {
	typeMu.RLock()
	defer typeMu.RUnlock()
	out := make([]string, 0, len(typeRegistry))
	for k := range typeRegistry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
