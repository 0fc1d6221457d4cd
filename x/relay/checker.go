package relay

import (
	"bytes"
	"context"
	"encoding/hex"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
)

// Relay is the backend tracking the settlement chain. It confirms the facts
// that instructions attest.
type Relay interface {
	// VerifyTransaction returns nil if the transaction is included in the
	// main chain with at least given number of confirmations.
	VerifyTransaction(ctx context.Context, txid [32]byte, confirmations uint32) error
	// VerifyBlockheight returns nil if the current main chain height
	// compares to the height with given operator.
	VerifyBlockheight(ctx context.Context, height uint32, op Operator) error
}

// Checker validates relay instructions.
type Checker struct {
	programID chainswap.Address
	relay     Relay
}

// NewChecker returns a checker that accepts instructions addressed to given
// relay program and confirms them with the backend.
func NewChecker(programID chainswap.Address, relay Relay) *Checker {
	return &Checker{programID: programID, relay: relay}
}

// ProgramID returns the relay program instructions must be addressed to.
func (c *Checker) ProgramID() chainswap.Address {
	return c.programID
}

// VerifyInclusion returns nil if the instruction attests that the
// transaction was included with exactly the given number of confirmations
// and the relay confirms it.
func (c *Checker) VerifyInclusion(ctx context.Context, ix *Instruction, txid [32]byte, confirmations uint32) error {
	if ix == nil {
		return errors.Wrap(ErrTxVerifyIx, "missing instruction")
	}
	if !c.programID.Equals(ix.ProgramID) {
		return errors.Wrapf(ErrTxVerifyProgramID, "got %s", ix.ProgramID)
	}
	gotTxid, gotConf, err := decodeInclusion(ix.Data)
	if err != nil {
		return err
	}
	if !bytes.Equal(gotTxid[:], txid[:]) {
		return errors.Wrapf(ErrTxVerifyTxid, "want %s", hex.EncodeToString(txid[:]))
	}
	if gotConf != confirmations {
		return errors.Wrapf(ErrTxVerifyConfirmations, "want %d, got %d", confirmations, gotConf)
	}
	if err := c.relay.VerifyTransaction(ctx, txid, confirmations); err != nil {
		return errors.Wrap(err, "transaction inclusion")
	}
	return nil
}

// VerifyHeight returns nil if the instruction attests exactly the given
// height comparison and the relay confirms it.
func (c *Checker) VerifyHeight(ctx context.Context, ix *Instruction, height uint32, op Operator) error {
	if ix == nil {
		return errors.Wrap(ErrHeightVerifyIx, "missing instruction")
	}
	if !c.programID.Equals(ix.ProgramID) {
		return errors.Wrapf(ErrHeightVerifyProgramID, "got %s", ix.ProgramID)
	}
	gotHeight, gotOp, err := decodeHeight(ix.Data)
	if err != nil {
		return err
	}
	if gotHeight != height {
		return errors.Wrapf(ErrHeightVerifyHeight, "want %d, got %d", height, gotHeight)
	}
	if gotOp != op {
		return errors.Wrapf(ErrHeightVerifyOperation, "want %s, got %s", op, gotOp)
	}
	if err := c.relay.VerifyBlockheight(ctx, height, op); err != nil {
		return errors.Wrap(err, "blockheight")
	}
	return nil
}
