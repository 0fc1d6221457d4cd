package weavetest

import (
	"context"
	"time"

	"github.com/iov-one/chainswap"
)

// Context returns a context with the block height, block time and chain id
// declared, as the executor would provide for a delivered transaction.
func Context(now time.Time) chainswap.Context {
	ctx := context.Background()
	ctx = chainswap.WithHeight(ctx, 100)
	ctx = chainswap.WithBlockTime(ctx, now)
	ctx = chainswap.WithChainID(ctx, "testchain-123")
	return ctx
}
