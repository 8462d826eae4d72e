package service

import (
	"context"
	"log"

	"github.com/hoffmann/waykit/internal/storage"
)

// SnapshotUploader is the slice of the object store the publish path needs;
// an interface so tests can inject a mock.
type SnapshotUploader interface {
	EnsureBucket(ctx context.Context, bucket, location string) error
	Upload(ctx context.Context, bucket, key, localPath string) error
}

// PublishSnapshot uploads an externally produced snapshot file under the
// canonical object key for region, creating the bucket when it does not
// exist yet. It returns the key the snapshot was published under. Consumers
// watching the bucket's notifications pick the new object up via Refresher.
func PublishSnapshot(ctx context.Context, store SnapshotUploader, bucket, region, localPath string) (string, error) {
	if err := store.EnsureBucket(ctx, bucket, ""); err != nil {
		return "", err
	}
	key := storage.SnapshotKey(region)
	if err := store.Upload(ctx, bucket, key, localPath); err != nil {
		return "", err
	}
	log.Printf("Published snapshot %s as %s/%s", localPath, bucket, key)
	return key, nil
}
