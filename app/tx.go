package app

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x/sigs"
	"golang.org/x/crypto/ed25519"
)

// Tx is the transaction format accepted by the engine: a single message
// together with the signatures authorizing it.
type Tx struct {
	Msg        chainswap.Msg        `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures,omitempty"`
}

var (
	_ chainswap.Tx  = (*Tx)(nil)
	_ sigs.SignedTx = (*Tx)(nil)
)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg chainswap.Msg) *Tx {
	return &Tx{Msg: msg}
}

func (tx *Tx) GetMsg() (chainswap.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "empty transaction")
	}
	return tx.Msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the binary encoding of the transaction without
// its signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	bz, err := cdc.MarshalBinaryBare(unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Sign appends the signature of given key, bound to the chain and the
// signer sequence.
func (tx *Tx) Sign(key ed25519.PrivateKey, chainID string, seq int64) error {
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}
