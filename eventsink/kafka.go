package eventsink

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/iov-one/chainswap/errors"
	"github.com/segmentio/kafka-go"
)

// Kafka publishes every event as a JSON message. Messages are keyed by the
// event key, falling back to the transaction height.
type Kafka struct {
	writer *kafka.Writer
}

var _ Sink = (*Kafka)(nil)

// NewKafka returns a sink writing to given topic.
func NewKafka(brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "kafka brokers")
	}
	if topic == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "kafka topic")
	}
	return &Kafka{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
		},
	}, nil
}

func (k *Kafka) Publish(ctx context.Context, b Batch) error {
	msgs, err := kafkaMessages(b)
	if err != nil || len(msgs) == 0 {
		return err
	}
	if err := k.writer.WriteMessages(ctx, msgs...); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "kafka: %s", err)
	}
	return nil
}

func kafkaMessages(b Batch) ([]kafka.Message, error) {
	records, err := Records(b)
	if err != nil {
		return nil, err
	}
	msgs := make([]kafka.Message, 0, len(records))
	for _, r := range records {
		value, err := json.Marshal(r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		key := r.Key
		if len(key) == 0 {
			key = []byte(strconv.FormatInt(r.Height, 10))
		}
		msgs = append(msgs, kafka.Message{
			Key:   key,
			Value: value,
			Time:  r.Time,
			Headers: []kafka.Header{
				{Key: "event", Value: []byte(r.Name)},
			},
		})
	}
	return msgs, nil
}

// Close flushes pending messages.
func (k *Kafka) Close() error {
	return k.writer.Close()
}
