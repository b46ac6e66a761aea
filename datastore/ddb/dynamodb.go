/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"

	"github.com/suparena/entitymapper/datastore"
	"github.com/suparena/entitymapper/entity"
	entityerrors "github.com/suparena/entitymapper/errors"
)

// maxAllocations bounds how many fresh ids Put tries when allocated ids
// collide with items written under explicit ids.
const maxAllocations = 8

// Store implements datastore.EntityStore on a single DynamoDB table.
type Store struct {
	client       Client
	tableName    string
	maxRetries   int
	retryBackoff time.Duration
}

var _ datastore.EntityStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithMaxRetries sets how often a throttled or failed call is retried.
func WithMaxRetries(n int) Option {
	return func(s *Store) {
		s.maxRetries = n
	}
}

// WithRetryBackoff sets the base wait between retries.
func WithRetryBackoff(d time.Duration) Option {
	return func(s *Store) {
		s.retryBackoff = d
	}
}

// New creates a Store using client and the table tableName. The table must
// have a string partition key PK and a string sort key SK.
func New(client Client, tableName string, opts ...Option) *Store {
	s := &Store{
		client:       client,
		tableName:    tableName,
		maxRetries:   3,
		retryBackoff: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDynamodbStore creates a Store with a client built from static credentials.
func NewDynamodbStore(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, awsDDBTableName string, opts ...Option) (*Store, error) {
	// Create a new DynamoDB client
	client, err := NewDynamoDBClient(ctx, awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	logging.GetFromContext(ctx).Info("dynamodb store initialized",
		slog.String("table", awsDDBTableName), slog.String("region", awsRegion))
	return New(client, awsDDBTableName, opts...), nil
}

// TableName returns the table the store writes to.
func (s *Store) TableName() string { return s.tableName }

// Put writes e according to mode. On insert, incomplete keys get an id from
// the kind's counter item; every insert is written only if no item exists
// under its key. An update is written only if the item exists.
func (s *Store) Put(ctx context.Context, e *entity.Entity, mode datastore.PutMode) (entity.Key, error) {
	if e == nil {
		return entity.Key{}, entityerrors.NewValidationError("entity", "nil entity")
	}
	key := e.Key()
	if key.Kind() == "" {
		return entity.Key{}, entityerrors.NewValidationError("key", "missing kind")
	}

	if key.IsComplete() {
		return key, s.putItem(ctx, e, mode)
	}
	if mode == datastore.PutUpdate {
		return entity.Key{}, entityerrors.NewValidationError("key", "update needs a complete key")
	}

	for i := 0; i < maxAllocations; i++ {
		id, err := s.allocateID(ctx, key.Kind())
		if err != nil {
			return entity.Key{}, err
		}
		allocated := key.WithID(id)
		err = s.putItem(ctx, e.WithKey(allocated), datastore.PutInsert)
		if err == nil {
			return allocated, nil
		}
		if !entityerrors.IsAlreadyExists(err) {
			return entity.Key{}, err
		}
		logging.GetFromContext(ctx).Debug("allocated id already in use", slog.String("key", allocated.String()))
	}
	return entity.Key{}, fmt.Errorf("no free id for %s after %d allocations", key.Kind(), maxAllocations)
}

func (s *Store) putItem(ctx context.Context, e *entity.Entity, mode datastore.PutMode) error {
	item, err := marshalEntity(e)
	if err != nil {
		return err
	}

	condition := "attribute_not_exists(PK)"
	if mode == datastore.PutUpdate {
		condition = "attribute_exists(PK)"
	}
	input := &sdk.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String(condition),
	}

	_, err = withRetry(ctx, s, "PutItem", func(ctx context.Context) (*sdk.PutItemOutput, error) {
		return s.client.PutItem(ctx, input)
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			key := e.Key()
			if mode == datastore.PutUpdate {
				return entityerrors.NewConditionFailedCause("PutItem", condition,
					entityerrors.NewNotFoundError(key.Kind(), key.String()))
			}
			return entityerrors.NewConditionFailedCause("PutItem", condition,
				entityerrors.NewAlreadyExistsError(key.Kind(), key.String()))
		}
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// allocateID increments the counter item of kind and returns the new value.
func (s *Store) allocateID(ctx context.Context, kind string) (int64, error) {
	key, err := marshalKey(sequencePK(kind))
	if err != nil {
		return 0, err
	}

	input := &sdk.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       key,
		UpdateExpression:          aws.String("ADD #seq :one"),
		ExpressionAttributeNames:  map[string]string{"#seq": attrSeq},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
		ReturnValues:              types.ReturnValueUpdatedNew,
	}
	out, err := withRetry(ctx, s, "UpdateItem", func(ctx context.Context) (*sdk.UpdateItemOutput, error) {
		return s.client.UpdateItem(ctx, input)
	})
	if err != nil {
		return 0, fmt.Errorf("id allocation for %s failed: %w", kind, err)
	}

	var seq sequence
	if err := attributevalue.UnmarshalMap(out.Attributes, &seq); err != nil {
		return 0, fmt.Errorf("failed to unmarshal sequence: %w", err)
	}
	if seq.Seq <= 0 {
		return 0, fmt.Errorf("id allocation for %s returned %d", kind, seq.Seq)
	}
	return seq.Seq, nil
}

// Get retrieves the entity stored under key.
func (s *Store) Get(ctx context.Context, key entity.Key) (*entity.Entity, error) {
	if !key.IsComplete() {
		return nil, entityerrors.NewValidationError("key", "incomplete key")
	}
	keyMap, err := marshalKey(entityPK(key.Kind(), key.ID()))
	if err != nil {
		return nil, err
	}

	out, err := withRetry(ctx, s, "GetItem", func(ctx context.Context) (*sdk.GetItemOutput, error) {
		return s.client.GetItem(ctx, &sdk.GetItemInput{
			TableName: aws.String(s.tableName),
			Key:       keyMap,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, entityerrors.NewNotFoundError(key.Kind(), key.String())
	}

	return unmarshalEntity(out.Item)
}

// Delete removes the entity stored under key.
func (s *Store) Delete(ctx context.Context, key entity.Key) error {
	if !key.IsComplete() {
		return entityerrors.NewValidationError("key", "incomplete key")
	}
	keyMap, err := marshalKey(entityPK(key.Kind(), key.ID()))
	if err != nil {
		return err
	}

	_, err = withRetry(ctx, s, "DeleteItem", func(ctx context.Context) (*sdk.DeleteItemOutput, error) {
		return s.client.DeleteItem(ctx, &sdk.DeleteItemInput{
			TableName:           aws.String(s.tableName),
			Key:                 keyMap,
			ConditionExpression: aws.String("attribute_exists(PK)"),
		})
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entityerrors.NewConditionFailedCause("DeleteItem", "attribute_exists(PK)",
				entityerrors.NewNotFoundError(key.Kind(), key.String()))
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// Count scans the table for items of kind.
func (s *Store) Count(ctx context.Context, kind string) (int, error) {
	input := &sdk.ScanInput{
		TableName:                aws.String(s.tableName),
		Select:                   types.SelectCount,
		FilterExpression:         aws.String("#type = :kind"),
		ExpressionAttributeNames: map[string]string{"#type": attrEntityType},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kind": &types.AttributeValueMemberS{Value: kind},
		},
	}

	total := 0
	p := sdk.NewScanPaginator(s.client, input)
	for p.HasMorePages() {
		out, err := withRetry(ctx, s, "Scan", func(ctx context.Context) (*sdk.ScanOutput, error) {
			return p.NextPage(ctx)
		})
		if err != nil {
			return 0, fmt.Errorf("Scan failed: %w", err)
		}
		total += int(out.Count)
	}
	return total, nil
}
