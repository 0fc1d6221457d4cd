package swap

import (
	"github.com/iov-one/chainswap"
)

// InitializeEvent is emitted when a swap is created. TxoHash is the
// output commitment declared by the offerer for chain swaps.
type InitializeEvent struct {
	Hash     chainswap.HexBytes `json:"hash"`
	TxoHash  chainswap.HexBytes `json:"txo_hash,omitempty"`
	Nonce    uint64             `json:"nonce"`
	Kind     Kind               `json:"kind"`
	Sequence uint64             `json:"sequence"`
}

func (InitializeEvent) EventName() string { return "swap/initialize" }

func (e InitializeEvent) EventKey() []byte { return e.Hash }

// ClaimEvent is emitted when a swap is claimed. Secret is the witness,
// the preimage of an HTLC or the settlement transaction hash.
type ClaimEvent struct {
	Hash     chainswap.HexBytes `json:"hash"`
	Secret   chainswap.HexBytes `json:"secret"`
	Sequence uint64             `json:"sequence"`
}

func (ClaimEvent) EventName() string { return "swap/claim" }

func (e ClaimEvent) EventKey() []byte { return e.Hash }

// RefundEvent is emitted when a swap is refunded.
type RefundEvent struct {
	Hash     chainswap.HexBytes `json:"hash"`
	Sequence uint64             `json:"sequence"`
}

func (RefundEvent) EventName() string { return "swap/refund" }

func (e RefundEvent) EventKey() []byte { return e.Hash }

var (
	_ chainswap.Event = InitializeEvent{}
	_ chainswap.Event = ClaimEvent{}
	_ chainswap.Event = RefundEvent{}
)
