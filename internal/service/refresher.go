// Package service contains the plumbing between the snapshot object store
// and the local dataset. Its Refresher consumes bucket-notification events
// from a message source (Kafka via pkg/kafkaclient) and pulls updated
// snapshot objects down to the local data path.
package service

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"
)

// MessageIterator is the contract for consuming messages from a Kafka topic.
// Implementations own the lifecycle of the underlying consumer connection.
type MessageIterator interface {
	// Messages returns a receive-only channel of Kafka messages, closed by
	// the implementation when the consumer is stopped.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been processed. It may
	// be a no-op for auto-committing implementations.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// DownloadFunc fetches one object from the snapshot store into localPath.
// Implementations must honor the context for cancellation.
type DownloadFunc func(ctx context.Context, bucket, key, localPath string) error

// Refresher keeps a local snapshot file in sync with its published object.
// Each bucket notification naming a snapshot object triggers a re-download;
// events for other objects are ignored.
type Refresher struct {
	msgs     MessageIterator
	download DownloadFunc
	dataPath string
}

// NewRefresher wires a message source to a download function. Refreshed
// snapshots land at dataPath.
func NewRefresher(msgs MessageIterator, download DownloadFunc, dataPath string) *Refresher {
	return &Refresher{msgs: msgs, download: download, dataPath: dataPath}
}

// Run starts a goroutine that processes notifications until the message
// channel closes. It returns a channel that emits the local path after each
// successful refresh. Malformed events and failed downloads are logged and
// skipped; their offsets are not committed, so they are retried on restart.
func (r *Refresher) Run(ctx context.Context) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)

		for msg := range r.msgs.Messages() {
			var event notification.Info
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("Error unmarshalling notification: %v", err)
				continue
			}
			if len(event.Records) == 0 {
				log.Print("Notification without records, skipping")
				continue
			}
			s3 := event.Records[0].S3

			key, err := url.QueryUnescape(s3.Object.Key)
			if err != nil {
				log.Printf("Error decoding object key %q: %v", s3.Object.Key, err)
				continue
			}
			if !strings.HasPrefix(key, "snapshots/") {
				log.Printf("Ignoring event for non-snapshot object %s", key)
				continue
			}

			if err := r.download(ctx, s3.Bucket.Name, key, r.dataPath); err != nil {
				log.Printf("Error refreshing snapshot from %s/%s: %v", s3.Bucket.Name, key, err)
				continue
			}

			select {
			case out <- r.dataPath:
			case <-ctx.Done():
				return
			}

			if err := r.msgs.CommitOffset(ctx, msg); err != nil {
				log.Printf("Failed to commit offset: %v", err)
			}
		}
	}()
	return out
}
