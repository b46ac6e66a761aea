/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/entitymapper/entity"
)

// PutMode says whether a Put creates an entity or replaces an existing one.
type PutMode int

const (
	// PutInsert creates an entity. An incomplete key gets a new id; a
	// complete key fails with AlreadyExists when an entity is stored under it.
	PutInsert PutMode = iota
	// PutUpdate replaces the entity stored under a complete key and fails
	// with NotFound when there is none.
	PutUpdate
)

func (m PutMode) String() string {
	if m == PutUpdate {
		return "update"
	}
	return "insert"
}

// EntityStore is a schemaless store of entities addressed by kind and
// numeric id.
type EntityStore interface {
	// Put writes e according to mode and returns the stored key. Conflicts
	// are ConditionFailedErrors caused by an AlreadyExistsError (insert) or a
	// NotFoundError (update).
	Put(ctx context.Context, e *entity.Entity, mode PutMode) (entity.Key, error)

	// Get returns the entity stored under key or a NotFoundError.
	Get(ctx context.Context, key entity.Key) (*entity.Entity, error)

	Delete(ctx context.Context, key entity.Key) error

	// Count returns the number of entities of a kind.
	Count(ctx context.Context, kind string) (int, error)
}

type DataStore[T any] interface {
	FindByID(ctx context.Context, id int64) (*T, error)

	Add(ctx context.Context, obj *T) (int64, error)

	Update(ctx context.Context, obj *T) error

	Delete(ctx context.Context, id int64) error

	AddAll(ctx context.Context, objs []*T) ([]int64, error)

	UpdateAll(ctx context.Context, objs []*T) error

	DeleteAll(ctx context.Context, ids []int64) error

	Count(ctx context.Context) (int, error)
}
