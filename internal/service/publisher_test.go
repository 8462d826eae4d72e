package service

import (
	"context"
	"errors"
	"testing"
)

// mockUploader records the order of store calls.
type mockUploader struct {
	calls     []string
	bucketErr error
	uploadErr error
}

func (m *mockUploader) EnsureBucket(_ context.Context, bucket, _ string) error {
	m.calls = append(m.calls, "ensure:"+bucket)
	return m.bucketErr
}

func (m *mockUploader) Upload(_ context.Context, bucket, key, localPath string) error {
	m.calls = append(m.calls, "upload:"+bucket+"/"+key+"<-"+localPath)
	return m.uploadErr
}

func TestPublishSnapshot(t *testing.T) {
	store := &mockUploader{}
	key, err := PublishSnapshot(context.Background(), store, "poi-data", "Alps Huts", "/tmp/alps-huts.jsonl.gz")
	if err != nil {
		t.Fatalf("PublishSnapshot: %v", err)
	}
	if key != "snapshots/alps-huts.jsonl.gz" {
		t.Errorf("key = %q; want the canonical snapshot key", key)
	}

	want := []string{
		"ensure:poi-data",
		"upload:poi-data/snapshots/alps-huts.jsonl.gz<-/tmp/alps-huts.jsonl.gz",
	}
	if len(store.calls) != len(want) {
		t.Fatalf("calls = %v; want %v", store.calls, want)
	}
	for i := range want {
		if store.calls[i] != want[i] {
			t.Errorf("call %d = %q; want %q", i, store.calls[i], want[i])
		}
	}
}

func TestPublishSnapshotBucketFailure(t *testing.T) {
	bucketErr := errors.New("access denied")
	store := &mockUploader{bucketErr: bucketErr}
	if _, err := PublishSnapshot(context.Background(), store, "poi-data", "alps-huts", "x"); !errors.Is(err, bucketErr) {
		t.Fatalf("err = %v; want the bucket error", err)
	}
	if len(store.calls) != 1 {
		t.Errorf("calls = %v; want no upload after a bucket failure", store.calls)
	}
}

func TestPublishSnapshotUploadFailure(t *testing.T) {
	uploadErr := errors.New("connection reset")
	store := &mockUploader{uploadErr: uploadErr}
	if _, err := PublishSnapshot(context.Background(), store, "poi-data", "alps-huts", "x"); !errors.Is(err, uploadErr) {
		t.Fatalf("err = %v; want the upload error", err)
	}
}
