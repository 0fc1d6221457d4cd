package eventsink

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x/swap"
)

type plainEvent struct {
	Value int `json:"value"`
}

func (plainEvent) EventName() string { return "test/plain" }

type failingSink struct{ err error }

func (f failingSink) Publish(context.Context, Batch) error { return f.err }

func testBatch() Batch {
	return Batch{
		Height: 12,
		Time:   time.Unix(1700000000, 0),
		Path:   "swap/claim",
		Events: []chainswap.Event{
			swap.ClaimEvent{Hash: []byte{0xab, 0xcd}, Secret: []byte("secret"), Sequence: 3},
			plainEvent{Value: 7},
		},
	}
}

func TestRecords(t *testing.T) {
	records, err := Records(testBatch())
	if err != nil {
		t.Fatalf("cannot serialize: %s", err)
	}
	if len(records) != 2 {
		t.Fatalf("want 2 records, got %d", len(records))
	}

	claim := records[0]
	if claim.Name != "swap/claim" || claim.Index != 0 || claim.Height != 12 {
		t.Fatalf("unexpected record: %+v", claim)
	}
	if string(claim.Key) != string([]byte{0xab, 0xcd}) {
		t.Fatalf("claim record is not keyed by the swap hash: %X", claim.Key)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(claim.Payload, &payload); err != nil {
		t.Fatalf("cannot decode payload: %s", err)
	}
	if payload["hash"] != "ABCD" {
		t.Fatalf("unexpected hash in payload: %v", payload["hash"])
	}

	plain := records[1]
	if plain.Index != 1 || len(plain.Key) != 0 {
		t.Fatalf("unexpected record: %+v", plain)
	}
	if string(plain.Payload) != `{"value":7}` {
		t.Fatalf("unexpected payload: %s", plain.Payload)
	}
}

func TestKafkaMessages(t *testing.T) {
	msgs, err := kafkaMessages(testBatch())
	if err != nil {
		t.Fatalf("cannot build messages: %s", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("want 2 messages, got %d", len(msgs))
	}
	if string(msgs[0].Key) != string([]byte{0xab, 0xcd}) {
		t.Fatalf("unexpected key: %X", msgs[0].Key)
	}
	if string(msgs[1].Key) != "12" {
		t.Fatalf("unkeyed event must use the height, got %q", msgs[1].Key)
	}
	if h := msgs[0].Headers; len(h) != 1 || string(h[0].Value) != "swap/claim" {
		t.Fatalf("unexpected headers: %v", h)
	}
	var r Record
	if err := json.Unmarshal(msgs[1].Value, &r); err != nil {
		t.Fatalf("cannot decode message: %s", err)
	}
	if r.Name != "test/plain" || r.Path != "swap/claim" {
		t.Fatalf("unexpected record: %+v", r)
	}
}

func TestNewKafkaRequiresConfiguration(t *testing.T) {
	if _, err := NewKafka(nil, "events"); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty error, got %+v", err)
	}
	if _, err := NewKafka([]string{"localhost:9092"}, ""); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty error, got %+v", err)
	}
}

func TestMulti(t *testing.T) {
	var a, b Recorder
	m := Multi{&a, failingSink{err: errors.ErrDatabase}, &b}

	err := m.Publish(context.Background(), testBatch())
	if !errors.ErrDatabase.Is(err) {
		t.Fatalf("want database error, got %+v", err)
	}
	if len(a.Batches()) != 1 || len(b.Batches()) != 1 {
		t.Fatal("all sinks must receive the batch")
	}
	if names := b.Names(); len(names) != 2 || names[0] != "swap/claim" {
		t.Fatalf("unexpected names: %v", names)
	}

	if err := (Multi{&a, Nop{}}).Publish(context.Background(), testBatch()); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}
