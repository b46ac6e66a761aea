/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"

	"github.com/suparena/entitymapper/entity"
	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/mapper"
)

// Repository implements DataStore[T] on top of an EntityStore.
type Repository[T any] struct {
	store  EntityStore
	mapper *mapper.Mapper
	keys   *entity.KeyFactory
	strict bool
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*repositoryOptions)

type repositoryOptions struct {
	strict bool
}

// FailOnFieldErrors makes writes and reads fail when any field could not be
// converted, instead of skipping the field.
func FailOnFieldErrors() RepositoryOption {
	return func(o *repositoryOptions) {
		o.strict = true
	}
}

// FailsOnFieldErrors reports whether opts include FailOnFieldErrors.
func FailsOnFieldErrors(opts ...RepositoryOption) bool {
	var o repositoryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o.strict
}

// CheckFieldErrors returns a ValidationError for kind when strict is set and
// diags hold an error.
func CheckFieldErrors(strict bool, kind string, diags mapper.Diagnostics) error {
	if strict && diags.HasErrors() {
		return errors.NewValidationError(kind, diags.Err().Error())
	}
	return nil
}

// NewRepository creates a repository storing T under kind.
func NewRepository[T any](store EntityStore, m *mapper.Mapper, kind string, opts ...RepositoryOption) *Repository[T] {
	return &Repository[T]{
		store:  store,
		mapper: m,
		keys:   entity.NewKeyFactory(kind),
		strict: FailsOnFieldErrors(opts...),
	}
}

var _ DataStore[struct{}] = (*Repository[struct{}])(nil)

// Kind returns the entity kind T is stored under.
func (r *Repository[T]) Kind() string { return r.keys.Kind() }

func (r *Repository[T]) logger(ctx context.Context) *slog.Logger {
	return logging.GetFromContext(ctx).With(slog.String("kind", r.keys.Kind()))
}

func (r *Repository[T]) checkDiagnostics(diags mapper.Diagnostics) error {
	return CheckFieldErrors(r.strict, r.keys.Kind(), diags)
}

// FindByID loads the entity with the given id.
func (r *Repository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	log := r.logger(ctx)
	key := r.keys.NewKey(id)

	e, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	obj, diags, err := mapper.Decode[T](r.mapper.ForLogger(log), e)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if err := r.checkDiagnostics(diags); err != nil {
		return nil, err
	}
	return obj, nil
}

// Add inserts obj and returns its id. A null id lets the store assign one,
// which is then set on obj. An id already in use fails with AlreadyExists.
func (r *Repository[T]) Add(ctx context.Context, obj *T) (int64, error) {
	return r.put(ctx, obj, true)
}

// Update replaces the entity stored under obj's id, which must be set. A
// missing entity fails with NotFound.
func (r *Repository[T]) Update(ctx context.Context, obj *T) error {
	_, err := r.put(ctx, obj, false)
	return err
}

func (r *Repository[T]) put(ctx context.Context, obj *T, isInsert bool) (int64, error) {
	if obj == nil {
		return 0, errors.NewValidationError("obj", "nil object")
	}
	log := r.logger(ctx)

	b, diags, err := r.mapper.ForLogger(log).ToEntityBuilder(r.keys, obj, isInsert)
	if err != nil {
		return 0, err
	}
	if err := r.checkDiagnostics(diags); err != nil {
		return 0, err
	}

	mode := PutUpdate
	if isInsert {
		mode = PutInsert
	}
	key, err := r.store.Put(ctx, b.Build(), mode)
	if err != nil {
		return 0, fmt.Errorf("put %s: %w", b.Key(), err)
	}

	if !b.Key().IsComplete() {
		// pushes the assigned id back through the read path of the id property
		idOnly := entity.NewBuilder(key).Build()
		if _, err := r.mapper.ForLogger(log).FromEntity(idOnly, obj); err != nil {
			return 0, err
		}
	}

	log.Debug("entity stored", slog.String("key", key.String()), slog.Bool("insert", isInsert))
	return key.ID(), nil
}

// Delete removes the entity with the given id.
func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	key := r.keys.NewKey(id)
	if err := r.store.Delete(ctx, key); err != nil {
		return err
	}
	r.logger(ctx).Debug("entity deleted", slog.String("key", key.String()))
	return nil
}

// AddAll inserts objs in order and returns their ids. It stops at the first
// failure, returning the ids stored so far.
func (r *Repository[T]) AddAll(ctx context.Context, objs []*T) ([]int64, error) {
	ids := make([]int64, 0, len(objs))
	for i, obj := range objs {
		id, err := r.Add(ctx, obj)
		if err != nil {
			return ids, fmt.Errorf("add %d of %d: %w", i+1, len(objs), err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// UpdateAll updates objs in order, stopping at the first failure.
func (r *Repository[T]) UpdateAll(ctx context.Context, objs []*T) error {
	for i, obj := range objs {
		if err := r.Update(ctx, obj); err != nil {
			return fmt.Errorf("update %d of %d: %w", i+1, len(objs), err)
		}
	}
	return nil
}

// DeleteAll removes the entities with the given ids, stopping at the first
// failure.
func (r *Repository[T]) DeleteAll(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if err := r.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete %d: %w", id, err)
		}
	}
	return nil
}

// Count returns the number of stored entities of T's kind.
func (r *Repository[T]) Count(ctx context.Context) (int, error) {
	return r.store.Count(ctx, r.keys.Kind())
}

// Type returns the Go type stored by the repository.
func (r *Repository[T]) Type() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
