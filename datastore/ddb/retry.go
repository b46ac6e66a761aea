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

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// withRetry runs call until it succeeds, fails with a non-retryable error,
// or maxRetries retries have been spent. The wait grows linearly with the
// attempt number.
func withRetry[O any](ctx context.Context, s *Store, op string, call func(ctx context.Context) (O, error)) (O, error) {
	var zero O
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		// Check context before retry
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		out, err := call(ctx)
		if err == nil {
			return out, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			return zero, err
		}

		// Don't sleep after last attempt
		if attempt < s.maxRetries {
			backoff := time.Duration(attempt+1) * s.retryBackoff
			logging.GetFromContext(ctx).Debug("retrying dynamodb call",
				slog.String("op", op), slog.Int("attempt", attempt+1), slog.Duration("backoff", backoff), slog.Any("err", err))
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return zero, fmt.Errorf("%s failed after %d retries: %w", op, s.maxRetries, lastErr)
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	var (
		throughput *types.ProvisionedThroughputExceededException
		limit      *types.RequestLimitExceeded
		internal   *types.InternalServerError
	)
	if errors.As(err, &throughput) || errors.As(err, &limit) || errors.As(err, &internal) {
		return true
	}

	// Check for AWS SDK retryable errors
	var awsErr interface{ IsRetryable() bool }
	if errors.As(err, &awsErr) {
		return awsErr.IsRetryable()
	}

	return false
}
