package relay

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
)

var (
	txVerifyPrefix = []byte{0x9d, 0x7e, 0xc1, 0x86, 0x31, 0x33, 0x07, 0x58}
	heightPrefix   = []byte{0xd3, 0xdc, 0xd0, 0x97, 0x3d, 0xae, 0xec, 0xea}
)

const (
	// prefix 8, txid 32, confirmations 4
	txVerifyLen = 44
	// prefix 8, height 4, operator 4
	heightLen = 16
)

// Operator compares the current chain height with a value.
type Operator uint32

const (
	OpLess Operator = iota
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpEqual
)

// Compare returns true if the relation holds between current height and
// given value.
func (op Operator) Compare(height, value uint32) bool {
	switch op {
	case OpLess:
		return height < value
	case OpLessEqual:
		return height <= value
	case OpGreater:
		return height > value
	case OpGreaterEqual:
		return height >= value
	case OpEqual:
		return height == value
	default:
		return false
	}
}

// Validate returns an error if this is not a known operator.
func (op Operator) Validate() error {
	if op > OpEqual {
		return errors.Wrapf(errors.ErrInput, "unknown operator %d", uint32(op))
	}
	return nil
}

func (op Operator) String() string {
	switch op {
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpEqual:
		return "=="
	default:
		return fmt.Sprintf("op(%d)", uint32(op))
	}
}

// Instruction is an attestation addressed to the relay program, submitted
// together with the call that depends on it.
type Instruction struct {
	ProgramID chainswap.Address  `json:"program_id"`
	Data      chainswap.HexBytes `json:"data"`
}

// Validate performs a sanity check of the instruction shape. Content is
// checked by the Checker.
func (ix *Instruction) Validate() error {
	if ix == nil {
		return errors.Wrap(errors.ErrEmpty, "instruction")
	}
	var errs error
	errs = errors.AppendField(errs, "ProgramID", ix.ProgramID.Validate())
	if len(ix.Data) == 0 {
		errs = errors.AppendField(errs, "Data", errors.ErrEmpty)
	}
	return errs
}

// NewInclusionInstruction returns an instruction attesting that the
// transaction is included in the chain with given number of confirmations.
func NewInclusionInstruction(programID chainswap.Address, txid [32]byte, confirmations uint32) *Instruction {
	data := make([]byte, 0, txVerifyLen)
	data = append(data, txVerifyPrefix...)
	data = append(data, txid[:]...)
	data = appendU32(data, confirmations)
	return &Instruction{ProgramID: programID, Data: data}
}

// NewHeightInstruction returns an instruction attesting that the current
// chain height compares to the value with given operator.
func NewHeightInstruction(programID chainswap.Address, height uint32, op Operator) *Instruction {
	data := make([]byte, 0, heightLen)
	data = append(data, heightPrefix...)
	data = appendU32(data, height)
	data = appendU32(data, uint32(op))
	return &Instruction{ProgramID: programID, Data: data}
}

func appendU32(b []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(b, buf[:]...)
}

// decodeInclusion returns the transaction id and the confirmations the
// instruction data attests.
func decodeInclusion(data []byte) (txid [32]byte, confirmations uint32, err error) {
	if len(data) != txVerifyLen || !bytes.Equal(data[:8], txVerifyPrefix) {
		return txid, 0, ErrTxVerifyIx
	}
	copy(txid[:], data[8:40])
	return txid, binary.LittleEndian.Uint32(data[40:44]), nil
}

// decodeHeight returns the height and the operator the instruction data
// attests.
func decodeHeight(data []byte) (height uint32, op Operator, err error) {
	if len(data) != heightLen || !bytes.Equal(data[:8], heightPrefix) {
		return 0, 0, ErrHeightVerifyIx
	}
	return binary.LittleEndian.Uint32(data[8:12]), Operator(binary.LittleEndian.Uint32(data[12:16])), nil
}
