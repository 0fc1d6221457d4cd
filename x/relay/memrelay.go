package relay

import (
	"context"
	"encoding/hex"
	"sync"

	"github.com/iov-one/chainswap/errors"
)

// MemRelay is a relay backend keeping the chain view in memory. It is fed
// by tests and by a development node.
type MemRelay struct {
	mu     sync.RWMutex
	height uint32
	// txs maps a transaction id to the height of its block.
	txs map[[32]byte]uint32
}

var _ Relay = (*MemRelay)(nil)

// NewMemRelay returns a relay with the chain tip at given height.
func NewMemRelay(height uint32) *MemRelay {
	return &MemRelay{
		height: height,
		txs:    make(map[[32]byte]uint32),
	}
}

// SetHeight moves the chain tip.
func (r *MemRelay) SetHeight(height uint32) {
	r.mu.Lock()
	r.height = height
	r.mu.Unlock()
}

// Height returns the chain tip.
func (r *MemRelay) Height() uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.height
}

// Include records the transaction as mined with given number of
// confirmations at the current tip.
func (r *MemRelay) Include(txid [32]byte, confirmations uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if confirmations == 0 || confirmations > r.height+1 {
		// Unconfirmed.
		delete(r.txs, txid)
		return
	}
	r.txs[txid] = r.height + 1 - confirmations
}

func (r *MemRelay) VerifyTransaction(ctx context.Context, txid [32]byte, confirmations uint32) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mined, ok := r.txs[txid]
	if !ok {
		return errors.Wrapf(ErrRelayRejected, "transaction %s not found", hex.EncodeToString(txid[:]))
	}
	if have := r.height + 1 - mined; have < confirmations {
		return errors.Wrapf(ErrRelayRejected, "%d confirmations, want %d", have, confirmations)
	}
	return nil
}

func (r *MemRelay) VerifyBlockheight(ctx context.Context, height uint32, op Operator) error {
	if err := op.Validate(); err != nil {
		return errors.Wrap(ErrRelayRejected, err.Error())
	}
	current := r.Height()
	if !op.Compare(current, height) {
		return errors.Wrapf(ErrRelayRejected, "height %d %s %d does not hold", current, op, height)
	}
	return nil
}
