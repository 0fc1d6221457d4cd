package client

import (
	"encoding/json"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/x/swap"
)

// Status is the node status.
type Status struct {
	ChainID string `json:"chain_id"`
	Height  int64  `json:"height"`
}

// Event is an event emitted by a committed transaction.
type Event struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// CommitResult is the result of a delivered transaction.
type CommitResult struct {
	Height int64              `json:"height"`
	Data   chainswap.HexBytes `json:"data"`
	Log    string             `json:"log"`
	Events []Event            `json:"events"`
}

// CheckResult is the result of a checked transaction.
type CheckResult struct {
	Data chainswap.HexBytes `json:"data"`
	Log  string             `json:"log"`
}

// SwapState is either an open swap or the settlement of a closed one.
type SwapState struct {
	State      string           `json:"state"`
	Swap       *swap.Swap       `json:"swap,omitempty"`
	Settlement *swap.Settlement `json:"settlement,omitempty"`
}

// Open returns true if the swap can still be claimed or refunded.
func (s *SwapState) Open() bool {
	return s.Swap != nil
}
