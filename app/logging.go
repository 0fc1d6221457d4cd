package app

import (
	"time"

	"github.com/iov-one/chainswap"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ chainswap.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (Logging) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx, next chainswap.Checker) (*chainswap.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx, next chainswap.Deliverer) (*chainswap.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err, false)
	return res, err
}

func logDuration(ctx chainswap.Context, start time.Time, msg string, err error, lowPrio bool) {
	logger := chainswap.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	switch {
	case err != nil && lowPrio:
		logger.With("err", err).Info(msg)
	case err != nil:
		logger.With("err", err).Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
