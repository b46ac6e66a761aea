/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"

	"github.com/suparena/entitymapper/config"
	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/datastore/ddb"
	"github.com/suparena/entitymapper/datastore/mock"
	"github.com/suparena/entitymapper/entity"
	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/mapper"
	"github.com/suparena/entitymapper/registry"
)

// Storage binds a mapper to an entity store and hands out one typed
// repository per Go type. It is safe for concurrent use.
type Storage struct {
	store    datastore.EntityStore
	mapper   *mapper.Mapper
	repoOpts []datastore.RepositoryOption
	// strict makes Save and Load fail on field errors like the repositories do.
	strict bool

	mu    sync.RWMutex
	repos map[reflect.Type]storedRepo
}

type storedRepo struct {
	kind string
	ds   any
}

// NewStorage creates a Storage. opts apply to every repository it creates.
func NewStorage(store datastore.EntityStore, m *mapper.Mapper, opts ...datastore.RepositoryOption) *Storage {
	return &Storage{
		store:    store,
		mapper:   m,
		repoOpts: opts,
		strict:   datastore.FailsOnFieldErrors(opts...),
		repos:    make(map[reflect.Type]storedRepo),
	}
}

// Open creates a Storage for the backend and mapper settings in cfg.
func Open(ctx context.Context, cfg *config.Config) (*Storage, error) {
	log := logging.GetFromContext(ctx)

	mopts := []mapper.Option{mapper.WithLogger(log)}
	if cfg.Mapper.StrictNarrowing {
		mopts = append(mopts, mapper.WithStrictNarrowing())
	}
	var ropts []datastore.RepositoryOption
	if cfg.Mapper.FailOnFieldErrors {
		ropts = append(ropts, datastore.FailOnFieldErrors())
	}

	var store datastore.EntityStore
	switch cfg.Backend {
	case config.BackendMemory:
		store = mock.New()
	case config.BackendDynamoDB:
		s, err := ddb.NewDynamodbStore(ctx, cfg.AWS.AccessKey, cfg.AWS.SecretKey, cfg.AWS.Region, cfg.AWS.Table,
			ddb.WithMaxRetries(cfg.AWS.MaxRetries),
			ddb.WithRetryBackoff(cfg.AWS.RetryBackoff))
		if err != nil {
			return nil, err
		}
		store = s
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	log.Info("storage opened", slog.String("backend", cfg.Backend))
	return NewStorage(store, mapper.New(mopts...), ropts...), nil
}

// Store returns the underlying entity store.
func (s *Storage) Store() datastore.EntityStore { return s.store }

// Mapper returns the mapper used by all repositories.
func (s *Storage) Mapper() *mapper.Mapper { return s.mapper }

// RegisterDataStore installs ds as the DataStore for T, replacing the
// repository GetDataStore would create.
func RegisterDataStore[T any](s *Storage, ds datastore.DataStore[T]) error {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.repos[typ]; exists {
		return fmt.Errorf("datastore for %s already registered", typ)
	}
	s.repos[typ] = storedRepo{kind: registry.KindOf[T](), ds: ds}
	return nil
}

// GetDataStore returns the DataStore for T, creating a repository storing T
// under its registered kind on first use.
func GetDataStore[T any](s *Storage) datastore.DataStore[T] {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	s.mu.RLock()
	r, exists := s.repos[typ]
	s.mu.RUnlock()
	if exists {
		return r.ds.(datastore.DataStore[T])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, exists := s.repos[typ]; exists {
		return r.ds.(datastore.DataStore[T])
	}

	kind := registry.KindOf[T]()
	repo := datastore.NewRepository[T](s.store, s.mapper, kind, s.repoOpts...)
	s.repos[typ] = storedRepo{kind: kind, ds: repo}
	return repo
}

// RemoveDataStore forgets the DataStore for T.
func RemoveDataStore[T any](s *Storage) error {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.repos[typ]; !exists {
		return fmt.Errorf("datastore for %s not found", typ)
	}
	delete(s.repos, typ)
	return nil
}

// ListDataStores returns the kinds of all open DataStores.
func (s *Storage) ListDataStores() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kinds := make([]string, 0, len(s.repos))
	for _, r := range s.repos {
		kinds = append(kinds, r.kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Save inserts obj, a pointer to a struct, under the kind registered for its
// type and returns the stored key. A null id is allocated by the store and
// set on obj. Field errors fail the call when the Storage was created with
// datastore.FailOnFieldErrors.
func (s *Storage) Save(ctx context.Context, obj any) (entity.Key, error) {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return entity.Key{}, errors.NewValidationError("obj", fmt.Sprintf("%T is not a non-nil pointer", obj))
	}

	m := s.mapper.ForLogger(logging.GetFromContext(ctx))
	kf := entity.NewKeyFactory(registry.KindOfType(rv.Type()))

	b, diags, err := m.ToEntityBuilder(kf, obj, true)
	if err != nil {
		return entity.Key{}, err
	}
	if err := datastore.CheckFieldErrors(s.strict, kf.Kind(), diags); err != nil {
		return entity.Key{}, err
	}
	key, err := s.store.Put(ctx, b.Build(), datastore.PutInsert)
	if err != nil {
		return entity.Key{}, err
	}
	if !b.Key().IsComplete() {
		if _, err := m.FromEntity(entity.NewBuilder(key).Build(), obj); err != nil {
			return entity.Key{}, err
		}
	}
	return key, nil
}

// Load reads the entity under key and decodes it into a new instance of the
// type registered for the key's kind. It returns a pointer to that instance.
// Field errors are handled as in Save.
func (s *Storage) Load(ctx context.Context, key entity.Key) (any, error) {
	obj, err := registry.NewInstance(key.Kind())
	if err != nil {
		return nil, errors.NewInstantiationError(key.Kind(), err.Error())
	}

	e, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	diags, err := s.mapper.ForLogger(logging.GetFromContext(ctx)).FromEntity(e, obj)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if err := datastore.CheckFieldErrors(s.strict, key.Kind(), diags); err != nil {
		return nil, err
	}
	return obj, nil
}
