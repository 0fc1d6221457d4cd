package sigverify

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"golang.org/x/crypto/ed25519"
)

const (
	headerLen = 16
	pubKeyOff = headerLen
	sigOff    = pubKeyOff + ed25519.PublicKeySize
	msgOff    = sigOff + ed25519.SignatureSize
	// DigestSize is the size of the signed message.
	DigestSize = 32
	// DataLen is the size of instruction data carrying a single signature.
	DataLen = msgOff + DigestSize

	// currentInstruction marks offsets as pointing into this instruction.
	currentInstruction = 0xFFFF
)

// expectedHeader is the only header accepted: one signature, padding, then
// the offset and instruction index of the signature, the public key and the
// message, all in this instruction.
var expectedHeader = func() []byte {
	h := make([]byte, headerLen)
	h[0] = 1 // number of signatures
	h[1] = 0 // padding
	binary.LittleEndian.PutUint16(h[2:], sigOff)
	binary.LittleEndian.PutUint16(h[4:], currentInstruction)
	binary.LittleEndian.PutUint16(h[6:], pubKeyOff)
	binary.LittleEndian.PutUint16(h[8:], currentInstruction)
	binary.LittleEndian.PutUint16(h[10:], msgOff)
	binary.LittleEndian.PutUint16(h[12:], DigestSize)
	binary.LittleEndian.PutUint16(h[14:], currentInstruction)
	return h
}()

// Instruction is a signature verification request, submitted together with
// the call that depends on it.
type Instruction struct {
	ProgramID chainswap.Address   `json:"program_id"`
	Accounts  []chainswap.Address `json:"accounts,omitempty"`
	Data      chainswap.HexBytes  `json:"data"`
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

// NewInstruction signs the digest with given key and returns the
// instruction attesting it.
func NewInstruction(programID chainswap.Address, key ed25519.PrivateKey, digest [32]byte) *Instruction {
	sig := ed25519.Sign(key, digest[:])
	pub := key.Public().(ed25519.PublicKey)

	data := make([]byte, 0, DataLen)
	data = append(data, expectedHeader...)
	data = append(data, pub...)
	data = append(data, sig...)
	data = append(data, digest[:]...)
	return &Instruction{ProgramID: programID, Data: data}
}

func (ix *Instruction) header() []byte    { return ix.Data[:headerLen] }
func (ix *Instruction) pubKey() []byte    { return ix.Data[pubKeyOff:sigOff] }
func (ix *Instruction) signature() []byte { return ix.Data[sigOff:msgOff] }
func (ix *Instruction) digest() []byte    { return ix.Data[msgOff:DataLen] }

func validHeader(h []byte) bool {
	return bytes.Equal(h, expectedHeader)
}
