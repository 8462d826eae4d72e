// Package kafkaclient wraps a kafka-go reader behind a channel interface
// with manual offset commits. waykit uses it to receive snapshot
// bucket-notification events.
package kafkaclient

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaReader is the slice of kafka.Reader the consumer needs; an interface
// so tests can inject a mock.
type KafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer runs a Kafka read loop and exposes the messages on a channel.
// Offsets are committed manually via CommitOffset, so a message that was not
// fully processed is redelivered after a restart.
type Consumer struct {
	reader KafkaReader
	// doneChan signals a graceful shutdown to the read loop.
	doneChan chan struct{}
	wg       sync.WaitGroup
	// messageChan carries messages out to the caller.
	messageChan chan kafka.Message
}

// NewConsumer creates a consumer for one topic and group on the given
// broker. Auto-commit is disabled; callers commit per message.
func NewConsumer(topic, groupID, broker string) (*Consumer, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		CommitInterval: 0,
		MinBytes:       1,
		MaxBytes:       10e6,
	})
	return &Consumer{
		reader:      reader,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}, nil
}

// Messages returns the channel of received messages. The channel is closed
// when the consumer stops.
func (c *Consumer) Messages() <-chan kafka.Message {
	return c.messageChan
}

// CommitOffset acknowledges one processed message.
func (c *Consumer) CommitOffset(ctx context.Context, msg kafka.Message) error {
	log.Printf("Committing offset for topic=%s, partition=%d, offset=%d", msg.Topic, msg.Partition, msg.Offset)
	return c.reader.CommitMessages(ctx, msg)
}

// Start launches the read loop. The loop ends when the context is
// cancelled, Stop is called, or the underlying reader is closed.
func (c *Consumer) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(c.messageChan)

		log.Println("Starting Kafka consumer loop...")
		for {
			select {
			case <-ctx.Done():
				log.Println("Context canceled, stopping consumer loop.")
				return
			case <-c.doneChan:
				log.Println("Shutdown signal received, stopping consumer loop.")
				return
			default:
				msg, err := c.reader.ReadMessage(ctx)
				if err != nil {
					if err.Error() == "kafka: reader closed" {
						return
					}
					log.Printf("Error reading message: %v", err)
					// Back off so a broken broker connection does not spin.
					time.Sleep(time.Second)
					continue
				}

				select {
				case c.messageChan <- msg:
					log.Printf("Message received: topic=%s, partition=%d, offset=%d", msg.Topic, msg.Partition, msg.Offset)
				case <-ctx.Done():
					return
				case <-c.doneChan:
					return
				}
			}
		}
	}()
}

// Stop shuts the consumer down and waits for the read loop to exit.
func (c *Consumer) Stop() {
	close(c.doneChan)
	c.wg.Wait()
	if err := c.reader.Close(); err != nil {
		log.Printf("Failed to close Kafka reader: %v", err)
	}
	log.Println("Kafka consumer stopped.")
}
