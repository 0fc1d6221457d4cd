package app

import (
	"reflect"

	"github.com/iov-one/chainswap"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []chainswap.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

	app.ChainDecorators(
	  app.NewLogging(),
	  app.NewRecovery(),
	  sigs.NewDecorator(),
	).WithHandler(
	  router,
	)
*/
func ChainDecorators(chain ...chainswap.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...chainswap.Decorator) Decorators {
	chain = cutoffNil(chain)
	next := make([]chainswap.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	return Decorators{chain: append(next, chain...)}
}

// cutoffNil removes in place all nil values from given slice.
func cutoffNil(ds []chainswap.Decorator) []chainswap.Decorator {
	var cutoff int
	for i := 0; i < len(ds); i++ {
		ds[i-cutoff] = ds[i]
		if ds[i] == nil || (reflect.ValueOf(ds[i]).Kind() == reflect.Ptr && reflect.ValueOf(ds[i]).IsNil()) {
			cutoff++
		}
	}
	return ds[:len(ds)-cutoff]
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h chainswap.Handler) chainswap.Handler {
	// The top of the chain is executed first.
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step executes a decorator around a specific Handler.
type step struct {
	d    chainswap.Decorator
	next chainswap.Handler
}

var _ chainswap.Handler = step{}

func (s step) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	return s.d.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	return s.d.Deliver(ctx, db, tx, s.next)
}
