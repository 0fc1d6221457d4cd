package app

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/eventsink"
	"github.com/tendermint/tendermint/libs/log"
)

// Executor applies transactions to the store one at a time. Every
// delivered transaction is executed as its own block: it gets the next
// height and the current clock time, runs against a cache wrap of the
// store and is committed only when the handler succeeds.
type Executor struct {
	mu      sync.Mutex
	db      chainswap.CacheableKVStore
	handler chainswap.Handler
	chainID string
	height  int64
	clock   func() time.Time
	logger  log.Logger

	// pub is taken before mu is released so batches reach the sink in
	// commit order while the next transaction executes.
	pub            sync.Mutex
	sink           eventsink.Sink
	publishTimeout time.Duration
}

// DefaultPublishTimeout bounds the delivery of a single event batch.
const DefaultPublishTimeout = 10 * time.Second

// Committed is the outcome of a transaction written to the store.
type Committed struct {
	chainswap.DeliverResult
	Height int64
	Time   time.Time
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithClock sets the source of block time.
func WithClock(now func() time.Time) ExecutorOption {
	return func(e *Executor) { e.clock = now }
}

// WithLogger sets the logger passed to handlers.
func WithLogger(logger log.Logger) ExecutorOption {
	return func(e *Executor) { e.logger = logger }
}

// WithSink sets the destination of events of committed transactions.
func WithSink(sink eventsink.Sink) ExecutorOption {
	return func(e *Executor) { e.sink = sink }
}

// WithPublishTimeout bounds the time spent publishing the events of one
// transaction. Values below or equal to zero are ignored.
func WithPublishTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.publishTimeout = d
		}
	}
}

// NewExecutor returns an executor for a store initialized with InitChain.
func NewExecutor(db chainswap.CacheableKVStore, h chainswap.Handler, opts ...ExecutorOption) (*Executor, error) {
	chainID, err := loadChainID(db)
	if err != nil {
		return nil, err
	}
	if chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "genesis not loaded")
	}
	height, err := loadHeight(db)
	if err != nil {
		return nil, err
	}
	e := &Executor{
		db:      db,
		handler: h,
		chainID: chainID,
		height:  height,
		clock:   time.Now,
		logger:  log.NewNopLogger(),
		sink:    eventsink.Nop{},

		publishTimeout: DefaultPublishTimeout,
	}
	for _, fn := range opts {
		fn(e)
	}
	return e, nil
}

// ChainID returns the chain id declared in the genesis.
func (e *Executor) ChainID() string {
	return e.chainID
}

// Height returns the height of the last committed transaction.
func (e *Executor) Height() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.height
}

// Check runs the check phase of the handler for the transaction as it
// would be delivered next. No state is ever written.
func (e *Executor) Check(ctx context.Context, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache := e.db.CacheWrap()
	defer cache.Discard()
	return e.handler.Check(e.blockContext(ctx, e.height+1, e.clock()), cache, tx)
}

// Deliver applies the transaction. On failure all state changes are
// dropped and the height is not advanced.
//
// Events of a committed transaction are published to the sink after the
// store lock is released. Publishing is detached from the cancellation of
// ctx and bounded by the publish timeout instead, because the transaction
// is already committed. A publishing failure is only logged.
func (e *Executor) Deliver(ctx context.Context, tx chainswap.Tx) (*Committed, error) {
	c, err := e.commit(ctx, tx)
	if err != nil {
		return nil, err
	}
	defer e.pub.Unlock()

	if len(c.Events) == 0 {
		return c, nil
	}
	batch := eventsink.Batch{
		Height: c.Height,
		Time:   c.Time,
		Path:   txPath(tx),
		Events: c.Events,
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.publishTimeout)
	defer cancel()
	if err := e.sink.Publish(pctx, batch); err != nil {
		e.logger.Error("cannot publish events", "height", c.Height, "err", err)
	}
	return c, nil
}

// commit executes and writes the transaction. On success it returns with
// the publishing lock held.
func (e *Executor) commit(ctx context.Context, tx chainswap.Tx) (*Committed, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	height := e.height + 1
	now := e.clock()
	bctx := e.blockContext(ctx, height, now)

	cache := e.db.CacheWrap()
	res, err := e.handler.Deliver(bctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := saveHeight(cache, height); err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	e.height = height
	e.pub.Lock()

	c := &Committed{Height: height, Time: now}
	if res != nil {
		c.DeliverResult = *res
	}
	return c, nil
}

// View calls fn with read access to the committed state.
func (e *Executor) View(fn func(db chainswap.ReadOnlyKVStore) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.db)
}

func (e *Executor) blockContext(ctx context.Context, height int64, now time.Time) chainswap.Context {
	ctx = chainswap.WithHeight(ctx, height)
	ctx = chainswap.WithBlockTime(ctx, now)
	ctx = chainswap.WithChainID(ctx, e.chainID)
	return chainswap.WithLogger(ctx, e.logger.With("height", height))
}

func txPath(tx chainswap.Tx) string {
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return ""
	}
	return msg.Path()
}

func loadHeight(db chainswap.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get([]byte(heightKey))
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrap(errors.ErrState, "malformed height")
	}
	return int64(binary.BigEndian.Uint64(raw)), nil
}

func saveHeight(db chainswap.KVStore, height int64) error {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(height))
	if err := db.Set([]byte(heightKey), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
