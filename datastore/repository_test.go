/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/datastore/mock"
	"github.com/suparena/entitymapper/datastore/testmodels"
	"github.com/suparena/entitymapper/entity"
	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/mapper"
)

func newRepo(opts ...datastore.RepositoryOption) (*datastore.Repository[testmodels.RatingSystem], *mock.Store) {
	store := mock.New()
	m := mapper.New(mapper.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return datastore.NewRepository[testmodels.RatingSystem](store, m, "RatingSystem", opts...), store
}

func sampleSystem() *testmodels.RatingSystem {
	created := strfmt.DateTime(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	desc := "club ladder"
	return &testmodels.RatingSystem{
		CreatedAt:     &created,
		Description:   &desc,
		Name:          "Elo",
		SiteURL:       "https://example.org",
		DefaultRating: 1500,
		Decay:         0.98,
		Active:        true,
		Tags:          []string{"chess", "club"},
		SeasonIDs:     []int64{2024, 2025},
		Levels:        []testmodels.Rating{{Label: "novice", Min: 0, Max: 1200}},
		Settings:      map[string]string{"k": "32"},
		Owner:         &testmodels.Owner{Name: "Ann"},
		Revision:      9,
	}
}

func TestRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("AddAndFind", func(t *testing.T) {
		repo, store := newRepo()
		in := sampleSystem()

		id, err := repo.Add(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		require.NotNil(t, in.ID)
		assert.Equal(t, id, *in.ID)

		stored := store.Entities("RatingSystem")
		require.Len(t, stored, 1)
		assert.False(t, stored[0].Contains("revision"))
		assert.False(t, stored[0].Contains("id"))

		out, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, in.Name, out.Name)
		assert.Equal(t, *in.Description, *out.Description)
		assert.True(t, time.Time(*in.CreatedAt).Equal(time.Time(*out.CreatedAt)))
		assert.Nil(t, out.UpdatedAt)
		assert.Equal(t, in.DefaultRating, out.DefaultRating)
		assert.Equal(t, in.Tags, out.Tags)
		assert.Equal(t, in.SeasonIDs, out.SeasonIDs)
		assert.Equal(t, in.Levels, out.Levels)
		assert.Equal(t, in.Settings, out.Settings)
		assert.Equal(t, in.Owner, out.Owner)
		assert.Zero(t, out.Revision)
	})

	t.Run("Update", func(t *testing.T) {
		repo, _ := newRepo()
		in := sampleSystem()
		id, err := repo.Add(ctx, in)
		require.NoError(t, err)

		in.Name = "Glicko"
		in.Tags = nil
		require.NoError(t, repo.Update(ctx, in))

		out, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Glicko", out.Name)
		assert.Nil(t, out.Tags)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("UpdateWithoutID", func(t *testing.T) {
		repo, _ := newRepo()
		err := repo.Update(ctx, sampleSystem())
		assert.True(t, errors.IsMissingID(err))
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		repo, store := newRepo()
		in := sampleSystem()
		id := int64(42)
		in.ID = &id

		err := repo.Update(ctx, in)
		assert.True(t, errors.IsNotFound(err))
		assert.True(t, errors.IsConditionFailed(err))
		assert.Empty(t, store.Entities("RatingSystem"))
	})

	t.Run("AddDuplicateID", func(t *testing.T) {
		repo, _ := newRepo()
		id, err := repo.Add(ctx, sampleSystem())
		require.NoError(t, err)

		dup := sampleSystem()
		dup.ID = &id
		dup.Name = "Other"
		_, err = repo.Add(ctx, dup)
		assert.True(t, errors.IsAlreadyExists(err))

		out, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Elo", out.Name)
	})

	t.Run("Delete", func(t *testing.T) {
		repo, _ := newRepo()
		id, err := repo.Add(ctx, sampleSystem())
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, id))
		_, err = repo.FindByID(ctx, id)
		assert.True(t, errors.IsNotFound(err))
		assert.True(t, errors.IsNotFound(repo.Delete(ctx, id)))
	})

	t.Run("Batch", func(t *testing.T) {
		repo, _ := newRepo()
		objs := []*testmodels.RatingSystem{sampleSystem(), sampleSystem(), sampleSystem()}

		ids, err := repo.AddAll(ctx, objs)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, ids)

		for _, o := range objs {
			o.Active = false
		}
		require.NoError(t, repo.UpdateAll(ctx, objs))
		out, err := repo.FindByID(ctx, 2)
		require.NoError(t, err)
		assert.False(t, out.Active)

		require.NoError(t, repo.DeleteAll(ctx, ids[:2]))
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		err = repo.DeleteAll(ctx, []int64{3, 99})
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("StoreErrors", func(t *testing.T) {
		repo, store := newRepo()
		store.WithPutError(errors.ErrConditionFailed)

		_, err := repo.Add(ctx, sampleSystem())
		assert.ErrorIs(t, err, errors.ErrConditionFailed)

		ids, err := repo.AddAll(ctx, []*testmodels.RatingSystem{sampleSystem()})
		assert.Error(t, err)
		assert.Empty(t, ids)

		_, err = repo.Add(ctx, nil)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("FieldErrors", func(t *testing.T) {
		store := mock.New()
		key, err := store.Put(ctx, entity.NewBuilder(entity.NewKeyFactory("RatingSystem").NewIncompleteKey()).
			Set("name", entity.Int64Value(3)).
			Set("siteUrl", entity.StringValue("https://example.org")).
			Build(), datastore.PutInsert)
		require.NoError(t, err)

		m := mapper.New(mapper.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

		lenient := datastore.NewRepository[testmodels.RatingSystem](store, m, "RatingSystem")
		out, err := lenient.FindByID(ctx, key.ID())
		require.NoError(t, err)
		assert.Empty(t, out.Name)
		assert.Equal(t, "https://example.org", out.SiteURL)

		strict := datastore.NewRepository[testmodels.RatingSystem](store, m, "RatingSystem", datastore.FailOnFieldErrors())
		_, err = strict.FindByID(ctx, key.ID())
		assert.True(t, errors.IsValidationError(err))
	})
}
