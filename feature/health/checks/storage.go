package checks

import (
	"context"
	"errors"
	"fmt"

	"order-reconciler/core/storage"
)

// ErrBucketMissing is returned when the archive bucket does not exist.
var ErrBucketMissing = errors.New("bucket does not exist")

// CheckBucket verifies that bucket exists.
func CheckBucket(ctx context.Context, client storage.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrBucketMissing, bucket)
	}
	return nil
}
