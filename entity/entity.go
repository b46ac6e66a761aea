/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entity

// Entity is a key plus an ordered set of named values.
type Entity struct {
	key    Key
	names  []string
	values map[string]Value
}

// New returns an entity with the given key and properties, in argument order
// of names. Used by store implementations when reading items back.
func New(key Key, names []string, values map[string]Value) *Entity {
	e := &Entity{key: key, values: make(map[string]Value, len(names))}
	for _, n := range names {
		v, ok := values[n]
		if !ok {
			continue
		}
		if _, dup := e.values[n]; !dup {
			e.names = append(e.names, n)
		}
		e.values[n] = v
	}
	return e
}

func (e *Entity) Key() Key { return e.key }

// WithKey returns a shallow copy of e carrying key.
func (e *Entity) WithKey(key Key) *Entity {
	c := *e
	c.key = key
	return &c
}

// Contains reports whether a field with the given name is present, including
// fields explicitly set to Null.
func (e *Entity) Contains(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Value returns the named field.
func (e *Entity) Value(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Names returns the field names in insertion order.
func (e *Entity) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Properties returns a copy of the field map.
func (e *Entity) Properties() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

func (e *Entity) Len() int { return len(e.names) }

// Builder accumulates fields for one write. It is single use.
type Builder struct {
	key    Key
	names  []string
	values map[string]Value
}

func NewBuilder(key Key) *Builder {
	return &Builder{key: key, values: make(map[string]Value)}
}

func (b *Builder) Key() Key { return b.key }

// Set stores v under name, replacing an earlier value of the same name.
func (b *Builder) Set(name string, v Value) *Builder {
	if _, ok := b.values[name]; !ok {
		b.names = append(b.names, name)
	}
	b.values[name] = v
	return b
}

// SetNull stores an explicit Null under name.
func (b *Builder) SetNull(name string) *Builder {
	return b.Set(name, NullValue())
}

func (b *Builder) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Build returns the entity. Later changes to the builder do not affect it.
func (b *Builder) Build() *Entity {
	return New(b.key, b.names, b.values)
}
