package sigs

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/weavetest"
)

// StdTx attaches signatures to a test transaction. The embedded
// transaction provides the sign bytes.
type StdTx struct {
	weavetest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ chainswap.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{
		Tx: weavetest.Tx{
			Msg:     &weavetest.Msg{RoutePath: "test/sigs"},
			Payload: payload,
		},
	}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []chainswap.Address
}

var _ chainswap.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &chainswap.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &chainswap.DeliverResult{}, nil
}
