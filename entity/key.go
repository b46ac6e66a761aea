/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entity

import "fmt"

// Key identifies an entity of a kind. An incomplete key has no id yet; the
// store assigns one when the entity is written.
type Key struct {
	kind     string
	id       int64
	complete bool
}

func (k Key) Kind() string { return k.kind }

// ID returns the numeric id. It is zero for incomplete keys.
func (k Key) ID() int64 { return k.id }

func (k Key) IsComplete() bool { return k.complete }

// WithID returns a complete copy of k carrying id.
func (k Key) WithID(id int64) Key {
	return Key{kind: k.kind, id: id, complete: true}
}

func (k Key) String() string {
	if !k.complete {
		return k.kind + "#?"
	}
	return fmt.Sprintf("%s#%d", k.kind, k.id)
}

// KeyFactory creates keys for a single kind.
type KeyFactory struct {
	kind string
}

func NewKeyFactory(kind string) *KeyFactory {
	return &KeyFactory{kind: kind}
}

func (f *KeyFactory) Kind() string { return f.kind }

// NewIncompleteKey returns a key whose id will be allocated by the store.
func (f *KeyFactory) NewIncompleteKey() Key {
	return Key{kind: f.kind}
}

// NewKey returns a complete key seeded with id.
func (f *KeyFactory) NewKey(id int64) Key {
	return Key{kind: f.kind, id: id, complete: true}
}
