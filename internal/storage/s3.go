// Package storage moves POI snapshot files through S3-compatible object
// storage. The waykit-ingest binary uses it to keep a local copy of the
// published snapshot current.
package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// SnapshotStore is a client for S3-compatible snapshot storage.
type SnapshotStore struct {
	client *minio.Client
}

// NewSnapshotStore connects to the MinIO endpoint configured through the
// MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY, and MINIO_USE_SSL
// environment variables.
func NewSnapshotStore() (*SnapshotStore, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Println("Successfully connected to MinIO endpoint:", endpoint)
	return &SnapshotStore{client: client}, nil
}

// SnapshotKey returns the canonical object key for a region's snapshot,
// e.g. "snapshots/alps-huts.jsonl.gz".
func SnapshotKey(region string) string {
	return fmt.Sprintf("snapshots/%s.jsonl.gz", sanitizeKey(region))
}

// sanitizeKey replaces spaces with hyphens and lowercases the string to form
// a valid object key segment.
func sanitizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *SnapshotStore) EnsureBucket(ctx context.Context, bucket, location string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: location}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}
	return nil
}

// Upload publishes a local snapshot file under the given key.
func (s *SnapshotStore) Upload(ctx context.Context, bucket, key, localPath string) error {
	info, err := s.client.FPutObject(ctx, bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "application/gzip",
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot %s to %s/%s: %w", localPath, bucket, key, err)
	}
	log.Printf("Uploaded snapshot %s/%s (%d bytes)", bucket, key, info.Size)
	return nil
}

// Download fetches the snapshot object into localPath, replacing any
// previous copy.
func (s *SnapshotStore) Download(ctx context.Context, bucket, key, localPath string) error {
	if err := s.client.FGetObject(ctx, bucket, key, localPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("failed to download snapshot %s/%s: %w", bucket, key, err)
	}
	log.Printf("Downloaded snapshot %s/%s to %s", bucket, key, localPath)
	return nil
}
