package app

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ chainswap.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into ErrPanic errors
func (Recovery) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx, next chainswap.Checker) (_ *chainswap.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

// Deliver turns panics into ErrPanic errors
func (Recovery) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx, next chainswap.Deliverer) (_ *chainswap.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
