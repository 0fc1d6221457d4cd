package weavetest

import (
	"sync"

	"github.com/iov-one/chainswap"
)

// Decorator counts the calls passing through it and optionally fails them.
//
// Decorators that share a Trace record their Name into it on every call, so
// a test can assert the order in which a chain invoked them.
type Decorator struct {
	Name  string
	Trace *Trace

	// CheckErr if set is returned by Check before calling the next step.
	CheckErr error
	// DeliverErr if set is returned by Deliver before calling the next step.
	DeliverErr error

	mu          sync.Mutex
	checkCall   int
	deliverCall int
}

var _ chainswap.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx, next chainswap.Checker) (*chainswap.CheckResult, error) {
	d.mu.Lock()
	d.checkCall++
	d.mu.Unlock()
	d.Trace.add(d.Name)

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx, next chainswap.Deliverer) (*chainswap.DeliverResult, error) {
	d.mu.Lock()
	d.deliverCall++
	d.mu.Unlock()
	d.Trace.add(d.Name)

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.CheckCallCount() + d.DeliverCallCount()
}

// Trace is an ordered log of decorator names.
type Trace struct {
	mu    sync.Mutex
	names []string
}

// add is a no-op on a nil trace.
func (t *Trace) add(name string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.names = append(t.names, name)
	t.mu.Unlock()
}

// Names returns a copy of the recorded names, oldest first.
func (t *Trace) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.names...)
}
