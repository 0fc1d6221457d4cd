package eventsink

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
)

// Sink is a destination of applied transaction events.
type Sink interface {
	Publish(ctx context.Context, b Batch) error
}

// Batch holds the events of a single applied transaction.
type Batch struct {
	Height int64
	Time   time.Time
	// Path is the message path of the transaction.
	Path   string
	Events []chainswap.Event
}

// Keyed is implemented by events that belong to an entity, for example
// the swap they describe. Events with the same key are kept in order by
// partitioned sinks.
type Keyed interface {
	EventKey() []byte
}

// Record is the serialized form of an event.
type Record struct {
	Height  int64           `json:"height"`
	Index   int             `json:"index"`
	Time    time.Time       `json:"time"`
	Path    string          `json:"path"`
	Name    string          `json:"name"`
	Key     []byte          `json:"key,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// Records serializes every event of the batch.
func Records(b Batch) ([]Record, error) {
	records := make([]Record, 0, len(b.Events))
	for i, ev := range b.Events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "event %d: %s", i, err)
		}
		r := Record{
			Height:  b.Height,
			Index:   i,
			Time:    b.Time.UTC(),
			Path:    b.Path,
			Name:    ev.EventName(),
			Payload: payload,
		}
		if k, ok := ev.(Keyed); ok {
			r.Key = k.EventKey()
		}
		records = append(records, r)
	}
	return records, nil
}

// Multi publishes to every sink, continuing after failures.
type Multi []Sink

var _ Sink = Multi(nil)

func (m Multi) Publish(ctx context.Context, b Batch) error {
	var errs error
	for _, s := range m {
		errs = errors.Append(errs, s.Publish(ctx, b))
	}
	return errs
}

// Nop discards all events.
type Nop struct{}

var _ Sink = Nop{}

func (Nop) Publish(context.Context, Batch) error { return nil }
