/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package codec provides the structured-text codec used to encode lists, maps
// and nested objects into a single string field.
//
// Implementations must be safe for concurrent use; the mapper shares one
// instance across all conversions.
package codec

import (
	"github.com/goccy/go-json"
)

// Codec encodes and decodes blob values.
type Codec interface {
	// Marshal serializes v.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into v (must be a pointer).
	Unmarshal(data []byte, v any) error
	// Name returns the codec identifier used for diagnostics.
	Name() string
}

// JSON is backed by github.com/goccy/go-json, which is wire compatible with
// encoding/json.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSON) Name() string                       { return "json" }

// Default is the codec used when none is configured.
var Default Codec = JSON{}
