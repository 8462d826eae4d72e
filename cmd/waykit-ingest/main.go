// waykit-ingest keeps the local POI snapshot current. In its default watch
// mode it consumes bucket notifications from Kafka and downloads updated
// snapshot objects from the object store to the local data path used by the
// cached provider. With -publish it instead uploads an externally produced
// snapshot file under the canonical key, which triggers that refresh on
// every watcher.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/hoffmann/waykit/internal/env"
	"github.com/hoffmann/waykit/internal/service"
	"github.com/hoffmann/waykit/internal/storage"
	"github.com/hoffmann/waykit/pkg/graceful"
	"github.com/hoffmann/waykit/pkg/kafkaclient"
)

func main() {
	publish := flag.String("publish", "", "upload this snapshot file and exit instead of watching")
	region := flag.String("region", "alps-huts", "region name forming the snapshot's object key")
	flag.Parse()

	env.Load()
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	store, err := storage.NewSnapshotStore()
	if err != nil {
		log.Fatal(err)
	}

	if *publish != "" {
		bucket := env.MustGet("MINIO_BUCKET")
		key, err := service.PublishSnapshot(ctx, store, bucket, *region, *publish)
		if err != nil {
			log.Fatalf("Failed to publish snapshot: %v", err)
		}
		log.Printf("Snapshot published as %s/%s", bucket, key)
		return
	}

	kafkaBroker := env.MustGet("KAFKA_BROKER")
	kafkaTopic := env.MustGet("KAFKA_TOPIC")
	kafkaGroupID := env.MustGet("KAFKA_GROUP_ID")
	dataPath := env.GetDefault("WAYKIT_DATA", "data/alps-huts.jsonl.gz")

	log.Printf("Connecting to Kafka broker: %s on topic: %s with group ID: %s", kafkaBroker, kafkaTopic, kafkaGroupID)

	consumer, err := kafkaclient.NewConsumer(kafkaTopic, kafkaGroupID, kafkaBroker)
	if err != nil {
		log.Fatalf("Failed to create kafka consumer %v", err)
	}

	consumer.Start(ctx)
	refresher := service.NewRefresher(consumer, store.Download, dataPath)
	for path := range refresher.Run(ctx) {
		log.Printf("Snapshot refreshed at %s", path)
	}

	consumer.Stop()
	log.Println("Main method finished, application exiting.")
}
