package eventsink

import (
	"context"
	"sync"
)

// Recorder keeps published batches in memory.
type Recorder struct {
	mu      sync.Mutex
	batches []Batch
}

var _ Sink = (*Recorder)(nil)

func (r *Recorder) Publish(_ context.Context, b Batch) error {
	r.mu.Lock()
	r.batches = append(r.batches, b)
	r.mu.Unlock()
	return nil
}

// Batches returns a copy of all batches published so far.
func (r *Recorder) Batches() []Batch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Batch(nil), r.batches...)
}

// Names returns the names of all published events, in order.
func (r *Recorder) Names() []string {
	var names []string
	for _, b := range r.Batches() {
		for _, ev := range b.Events {
			names = append(names, ev.EventName())
		}
	}
	return names
}
