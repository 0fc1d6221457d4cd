package app

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/eventsink"
	"github.com/iov-one/chainswap/store"
	"github.com/iov-one/chainswap/weavetest"
	"github.com/iov-one/chainswap/x/swap"
	"github.com/stretchr/testify/require"
)

const testChainID = "exec-chain-1"

func initializedStore(t testing.TB) store.CacheableKVStore {
	t.Helper()
	db := store.MemStore()
	if err := InitChain(db, Genesis{ChainID: testChainID}, ChainInitializers()); err != nil {
		t.Fatalf("cannot init chain: %s", err)
	}
	return db
}

// ctxHandler records the block context it was called with.
type ctxHandler struct {
	height  int64
	chainID string
	now     time.Time
}

func (h *ctxHandler) record(ctx chainswap.Context) {
	h.height, _ = chainswap.GetHeight(ctx)
	h.chainID = chainswap.GetChainID(ctx)
	h.now, _ = chainswap.BlockTime(ctx)
}

func (h *ctxHandler) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	h.record(ctx)
	return &chainswap.CheckResult{}, nil
}

func (h *ctxHandler) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	h.record(ctx)
	return &chainswap.DeliverResult{}, nil
}

func TestExecutorRequiresGenesis(t *testing.T) {
	_, err := NewExecutor(store.MemStore(), &weavetest.Handler{})
	require.True(t, errors.ErrState.Is(err), "%+v", err)
}

func TestExecutorBlockContext(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	h := &ctxHandler{}
	exec, err := NewExecutor(initializedStore(t), h, WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	require.Equal(t, testChainID, exec.ChainID())

	_, err = exec.Check(context.Background(), &weavetest.Tx{})
	require.NoError(t, err)
	require.Equal(t, int64(1), h.height)
	require.Equal(t, int64(0), exec.Height())

	for i := int64(1); i <= 3; i++ {
		res, err := exec.Deliver(context.Background(), &weavetest.Tx{})
		require.NoError(t, err)
		require.Equal(t, i, res.Height)
		require.Equal(t, now, res.Time)
		require.Equal(t, i, h.height)
		require.Equal(t, i, exec.Height())
	}
	require.Equal(t, testChainID, h.chainID)
	require.Equal(t, now, h.now)
}

func TestExecutorAtomicDeliver(t *testing.T) {
	db := initializedStore(t)
	key, value := []byte("some-key"), []byte("some-value")

	failing, err := NewExecutor(db, &weavetest.WriteHandler{Key: key, Value: value, Err: errors.ErrAmount})
	require.NoError(t, err)
	_, err = failing.Deliver(context.Background(), &weavetest.Tx{})
	require.True(t, errors.ErrAmount.Is(err), "%+v", err)
	require.Equal(t, int64(0), failing.Height())
	assertMissing(t, failing, key)

	// Check never writes, even when successful.
	passing, err := NewExecutor(db, &weavetest.WriteHandler{Key: key, Value: value})
	require.NoError(t, err)
	_, err = passing.Check(context.Background(), &weavetest.Tx{})
	require.NoError(t, err)
	assertMissing(t, passing, key)

	_, err = passing.Deliver(context.Background(), &weavetest.Tx{})
	require.NoError(t, err)
	err = passing.View(func(db chainswap.ReadOnlyKVStore) error {
		got, err := db.Get(key)
		require.NoError(t, err)
		require.Equal(t, value, got)
		return nil
	})
	require.NoError(t, err)

	// Height survives a restart.
	reopened, err := NewExecutor(db, &weavetest.Handler{})
	require.NoError(t, err)
	require.Equal(t, int64(1), reopened.Height())
}

func assertMissing(t testing.TB, exec *Executor, key []byte) {
	t.Helper()
	err := exec.View(func(db chainswap.ReadOnlyKVStore) error {
		has, err := db.Has(key)
		if err != nil {
			return err
		}
		if has {
			t.Fatalf("key %q must not be stored", key)
		}
		return nil
	})
	require.NoError(t, err)
}

type failingSink struct{}

func (failingSink) Publish(context.Context, eventsink.Batch) error {
	return errors.ErrDatabase
}

func TestExecutorPublishesEvents(t *testing.T) {
	ev := swap.RefundEvent{Hash: []byte("hash"), Sequence: 4}
	h := &weavetest.Handler{
		DeliverResult: chainswap.DeliverResult{Events: []chainswap.Event{ev}},
	}
	rec := &eventsink.Recorder{}
	exec, err := NewExecutor(initializedStore(t), h, WithSink(eventsink.Multi{rec, failingSink{}}))
	require.NoError(t, err)

	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "swap/refund"}}
	_, err = exec.Deliver(context.Background(), tx)
	require.NoError(t, err)

	batches := rec.Batches()
	require.Equal(t, 1, len(batches))
	require.Equal(t, int64(1), batches[0].Height)
	require.Equal(t, "swap/refund", batches[0].Path)
	require.Equal(t, []string{"swap/refund"}, rec.Names())

	// Nothing is published for failed transactions.
	h.DeliverErr = errors.ErrUnauthorized
	_, err = exec.Deliver(context.Background(), tx)
	require.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	require.Equal(t, 1, len(rec.Batches()))
}

// ctxSink fails like a network sink would when its context is done.
type ctxSink struct {
	eventsink.Recorder
	deadline bool
}

func (s *ctxSink) Publish(ctx context.Context, b eventsink.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, s.deadline = ctx.Deadline()
	return s.Recorder.Publish(ctx, b)
}

func TestExecutorPublishesAfterCallerCancel(t *testing.T) {
	h := &weavetest.Handler{
		DeliverResult: chainswap.DeliverResult{Events: []chainswap.Event{swap.RefundEvent{Hash: []byte("hash")}}},
	}
	sink := &ctxSink{}
	exec, err := NewExecutor(initializedStore(t), h, WithSink(sink))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := exec.Deliver(ctx, &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "swap/refund"}})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Height)

	require.Equal(t, []string{"swap/refund"}, sink.Names())
	require.True(t, sink.deadline, "publishing must be bounded")
}

// blockingSink holds every publish until its context is done.
type blockingSink struct {
	started chan struct{}
	errs    chan error
}

func (s *blockingSink) Publish(ctx context.Context, b eventsink.Batch) error {
	close(s.started)
	<-ctx.Done()
	s.errs <- ctx.Err()
	return ctx.Err()
}

func TestExecutorPublishTimeout(t *testing.T) {
	h := &weavetest.Handler{
		DeliverResult: chainswap.DeliverResult{Events: []chainswap.Event{swap.RefundEvent{Hash: []byte("hash")}}},
	}
	sink := &blockingSink{started: make(chan struct{}), errs: make(chan error, 1)}
	exec, err := NewExecutor(initializedStore(t), h, WithSink(sink), WithPublishTimeout(50*time.Millisecond))
	require.NoError(t, err)

	done := make(chan *Committed, 1)
	go func() {
		res, err := exec.Deliver(context.Background(), &weavetest.Tx{})
		if err != nil {
			t.Errorf("deliver: %+v", err)
		}
		done <- res
	}()

	// State stays readable while the sink is slow.
	<-sink.started
	require.Equal(t, int64(1), exec.Height())

	require.Equal(t, context.DeadlineExceeded, <-sink.errs)
	res := <-done
	require.NotNil(t, res)
	require.Equal(t, int64(1), res.Height)
}
