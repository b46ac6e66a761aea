/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.EntityStore for testing
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/entity"
	"github.com/suparena/entitymapper/errors"
)

// Store is an in-memory datastore.EntityStore. Ids are allocated per kind,
// starting at 1 and never reused.
type Store struct {
	mu          sync.RWMutex
	data        map[string]map[int64]*entity.Entity
	nextID      map[string]int64
	putError    error
	getError    error
	deleteError error
	countError  error
}

var _ datastore.EntityStore = (*Store)(nil)

// New creates a new mock Store
func New() *Store {
	return &Store{
		data:   make(map[string]map[int64]*entity.Entity),
		nextID: make(map[string]int64),
	}
}

// WithPutError makes Put operations return an error
func (m *Store) WithPutError(err error) *Store {
	m.putError = err
	return m
}

// WithGetError makes Get operations return an error
func (m *Store) WithGetError(err error) *Store {
	m.getError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *Store) WithDeleteError(err error) *Store {
	m.deleteError = err
	return m
}

// WithCountError makes Count operations return an error
func (m *Store) WithCountError(err error) *Store {
	m.countError = err
	return m
}

// Put stores an entity, allocating an id for an incomplete key on insert
func (m *Store) Put(ctx context.Context, e *entity.Entity, mode datastore.PutMode) (entity.Key, error) {
	if m.putError != nil {
		return entity.Key{}, m.putError
	}
	if e == nil {
		return entity.Key{}, errors.NewValidationError("entity", "nil entity")
	}
	if err := ctx.Err(); err != nil {
		return entity.Key{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := e.Key()
	if key.Kind() == "" {
		return entity.Key{}, errors.NewValidationError("key", "missing kind")
	}
	_, exists := m.data[key.Kind()][key.ID()]
	switch {
	case mode == datastore.PutUpdate && !key.IsComplete():
		return entity.Key{}, errors.NewValidationError("key", "update needs a complete key")
	case mode == datastore.PutUpdate && !exists:
		return entity.Key{}, errors.NewConditionFailedCause("put", "entity exists",
			errors.NewNotFoundError(key.Kind(), key.String()))
	case !key.IsComplete():
		m.nextID[key.Kind()]++
		key = key.WithID(m.nextID[key.Kind()])
	case mode == datastore.PutInsert && exists:
		return entity.Key{}, errors.NewConditionFailedCause("put", "entity does not exist",
			errors.NewAlreadyExistsError(key.Kind(), key.String()))
	}
	if key.ID() > m.nextID[key.Kind()] {
		m.nextID[key.Kind()] = key.ID()
	}

	byID, ok := m.data[key.Kind()]
	if !ok {
		byID = make(map[int64]*entity.Entity)
		m.data[key.Kind()] = byID
	}
	byID[key.ID()] = e.WithKey(key)
	return key, nil
}

// Get retrieves an entity by key
func (m *Store) Get(ctx context.Context, key entity.Key) (*entity.Entity, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	if !key.IsComplete() {
		return nil, errors.NewValidationError("key", "incomplete key")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if e, exists := m.data[key.Kind()][key.ID()]; exists {
		return e, nil
	}
	return nil, errors.NewNotFoundError(key.Kind(), key.String())
}

// Delete removes an entity by key
func (m *Store) Delete(ctx context.Context, key entity.Key) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key.Kind()][key.ID()]; !exists {
		return errors.NewNotFoundError(key.Kind(), key.String())
	}
	delete(m.data[key.Kind()], key.ID())
	return nil
}

// Count returns the number of stored entities of a kind
func (m *Store) Count(ctx context.Context, kind string) (int, error) {
	if m.countError != nil {
		return 0, m.countError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[kind]), nil
}

// Helper methods for testing

// Entities returns the stored entities of a kind, ordered by id
func (m *Store) Entities(kind string) []*entity.Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*entity.Entity, 0, len(m.data[kind]))
	for _, e := range m.data[kind] {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key().ID() < result[j].Key().ID() })
	return result
}

// Clear removes all data; id counters are kept
func (m *Store) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]map[int64]*entity.Entity)
}
