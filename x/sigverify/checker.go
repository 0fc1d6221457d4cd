package sigverify

import (
	"bytes"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"golang.org/x/crypto/ed25519"
)

// Checker validates signature verification instructions.
type Checker struct {
	programID chainswap.Address
}

// NewChecker returns a checker accepting instructions addressed to given
// signature verification program.
func NewChecker(programID chainswap.Address) *Checker {
	return &Checker{programID: programID}
}

// ProgramID returns the program instructions must be addressed to.
func (c *Checker) ProgramID() chainswap.Address {
	return c.programID
}

// VerifySignature returns nil if the instruction attests that the signer
// signed the digest.
func (c *Checker) VerifySignature(ix *Instruction, signer chainswap.Address, digest [32]byte) error {
	if ix == nil {
		return errors.Wrap(ErrInvalidProgram, "missing instruction")
	}
	if !c.programID.Equals(ix.ProgramID) {
		return errors.Wrapf(ErrInvalidProgram, "got %s", ix.ProgramID)
	}
	if len(ix.Accounts) != 0 {
		return errors.Wrapf(ErrAccountsLength, "got %d", len(ix.Accounts))
	}
	if len(ix.Data) != DataLen {
		return errors.Wrapf(ErrDataLength, "want %d, got %d", DataLen, len(ix.Data))
	}
	if !validHeader(ix.header()) {
		return ErrInvalidHeader
	}
	if !bytes.Equal(ix.pubKey(), signer) {
		return errors.Wrap(ErrInvalidData, "public key")
	}
	if !bytes.Equal(ix.digest(), digest[:]) {
		return errors.Wrap(ErrInvalidData, "message")
	}
	if !ed25519.Verify(ed25519.PublicKey(ix.pubKey()), ix.digest(), ix.signature()) {
		return ErrBadSignature
	}
	return nil
}
