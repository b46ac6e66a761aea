//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymapper_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/joho/godotenv"

	"github.com/suparena/entitymapper"
	"github.com/suparena/entitymapper/config"
	"github.com/suparena/entitymapper/datastore/ddb"
	"github.com/suparena/entitymapper/datastore/testmodels"
	"github.com/suparena/entitymapper/entity"
	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/registry"
)

// Test entities
type IntegrationUser struct {
	ID        *int64            `entity:"id"`
	Email     string            `entity:"email"`
	Name      string            `entity:"name"`
	Visits    int32             `entity:"visits"`
	Roles     []string          `entity:"roles"`
	Prefs     map[string]string `entity:"prefs,mapjson"`
	CreatedAt time.Time         `entity:"createdAt"`
	UpdatedAt *strfmt.DateTime  `entity:"updatedAt"`
}

func init() {
	// Register types
	registry.Register[IntegrationUser]("IntegrationUser")
	registry.Register[testmodels.RatingSystem]("IntegrationRatingSystem")
}

func setupTestStorage(t *testing.T) *entitymapper.Storage {
	if err := godotenv.Load(); err != nil {
		t.Log("No .env file found, proceeding with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.AWS.Table == "" {
		t.Skip("AWS_DDB_TABLE not set, skipping integration test")
	}
	cfg.Backend = config.BackendDynamoDB

	storage, err := entitymapper.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	if _, ok := storage.Store().(*ddb.Store); !ok {
		t.Fatalf("Expected DynamoDB store, got %T", storage.Store())
	}
	return storage
}

func TestIntegrationBasicOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	storage := setupTestStorage(t)
	users := entitymapper.GetDataStore[IntegrationUser](storage)

	now := time.Now()
	updated := strfmt.DateTime(now)
	user := &IntegrationUser{
		Email:     "test@example.com",
		Name:      "Test User",
		Visits:    3,
		Roles:     []string{"admin", "player"},
		Prefs:     map[string]string{"theme": "dark"},
		CreatedAt: now,
		UpdatedAt: &updated,
	}

	// Test Add
	id, err := users.Add(ctx, user)
	if err != nil {
		t.Fatalf("Failed to add user: %v", err)
	}
	if user.ID == nil || *user.ID != id {
		t.Fatalf("Expected id %d to be set on user", id)
	}

	// Test FindByID
	retrieved, err := users.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if retrieved.Email != user.Email || retrieved.Visits != user.Visits || len(retrieved.Roles) != 2 {
		t.Errorf("Retrieved user doesn't match: got %+v, want %+v", retrieved, user)
	}
	if retrieved.Prefs["theme"] != "dark" {
		t.Errorf("Expected prefs to round trip, got %v", retrieved.Prefs)
	}
	if !retrieved.CreatedAt.Equal(now.Truncate(time.Microsecond)) {
		t.Errorf("Expected createdAt %v, got %v", now, retrieved.CreatedAt)
	}

	// Test Update
	retrieved.Name = "Updated Name"
	retrieved.Roles = nil
	if err := users.Update(ctx, retrieved); err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}
	obj, err := storage.Load(ctx, entity.NewKeyFactory("IntegrationUser").NewKey(id))
	if err != nil {
		t.Fatalf("Failed to load user: %v", err)
	}
	loaded := obj.(*IntegrationUser)
	if loaded.Name != "Updated Name" || loaded.Roles != nil {
		t.Errorf("Update not applied: %+v", loaded)
	}

	// Test Delete
	if err := users.Delete(ctx, id); err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}

	// Verify deletion
	_, err = users.FindByID(ctx, id)
	if !errors.IsNotFound(err) {
		t.Errorf("Expected not found error, got: %v", err)
	}
}

func TestIntegrationBatch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	storage := setupTestStorage(t)
	systems := entitymapper.GetDataStore[testmodels.RatingSystem](storage)

	before, err := systems.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}

	batch := make([]*testmodels.RatingSystem, 3)
	for i := range batch {
		batch[i] = &testmodels.RatingSystem{
			Name:          fmt.Sprintf("Integration %d", i),
			DefaultRating: 1500,
			Levels:        []testmodels.Rating{{Label: "all", Min: 0, Max: 3000}},
		}
	}

	ids, err := systems.AddAll(ctx, batch)
	if err != nil {
		t.Fatalf("Failed to add batch: %v", err)
	}

	after, err := systems.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if after != before+len(batch) {
		t.Errorf("Expected count %d, got %d", before+len(batch), after)
	}

	if err := systems.DeleteAll(ctx, ids); err != nil {
		t.Fatalf("Failed to delete batch: %v", err)
	}
}
