package btc

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/iov-one/chainswap/errors"
)

const (
	// LocktimeThreshold is the smallest locktime value that is interpreted
	// as a timestamp. Nonced transactions encode part of the nonce in the
	// locktime above this value.
	LocktimeThreshold = 500000000

	// SequenceMask selects the part of an input sequence that carries
	// the nonce.
	SequenceMask = 0x00FFFFFF

	// sequenceMarker is required in the top nibble of every sequence of a
	// nonced transaction, so that the sequence has no consensus meaning.
	sequenceMarker = 0xF0000000
)

// Output is a single transaction output.
type Output struct {
	Value  uint64
	Script []byte
}

// Tx holds the parts of a transaction that a swap claim is verified with.
type Tx struct {
	Version uint32
	// Out is the selected output or nil if the transaction has fewer
	// outputs than the requested index.
	Out      *Output
	Locktime uint32
	// Hash is the double sha256 of the raw transaction, in internal byte
	// order.
	Hash [32]byte
	// Sequence holds the low 24 bits of the first input sequence.
	Sequence uint32
}

// ParseTx decodes a raw non-segwit transaction, selecting the output at the
// vout index. When nonceMode is set every input must share the same masked
// sequence and have the top nibble of its sequence set.
func ParseTx(raw []byte, vout uint64, nonceMode bool) (*Tx, error) {
	// A 64 byte transaction can be presented as an inner merkle tree node.
	if len(raw) == 64 {
		return nil, errors.Wrap(errors.ErrInput, "64 byte transaction")
	}

	r := &reader{data: raw}
	var tx Tx
	var err error

	if tx.Version, err = r.u32(); err != nil {
		return nil, errors.Wrap(err, "version")
	}

	inputs, size, err := r.varInt()
	if err != nil {
		return nil, errors.Wrap(err, "input count")
	}
	if inputs == 0 && size == 1 {
		if len(raw) > r.off && raw[r.off] == 0x01 {
			return nil, errors.Wrap(errors.ErrInput, "segwit transaction")
		}
	}

	for i := uint64(0); i < inputs; i++ {
		// Previous transaction hash and output index.
		if err := r.skip(32 + 4); err != nil {
			return nil, errors.Wrapf(err, "input %d outpoint", i)
		}
		scriptLen, _, err := r.varInt()
		if err != nil {
			return nil, errors.Wrapf(err, "input %d script size", i)
		}
		if err := r.skip(scriptLen); err != nil {
			return nil, errors.Wrapf(err, "input %d script", i)
		}
		seq, err := r.u32()
		if err != nil {
			return nil, errors.Wrapf(err, "input %d sequence", i)
		}
		if i == 0 {
			tx.Sequence = seq & SequenceMask
		}
		if nonceMode {
			if seq&SequenceMask != tx.Sequence {
				return nil, errors.Wrapf(errors.ErrInput, "input %d sequence differs", i)
			}
			if seq&sequenceMarker != sequenceMarker {
				return nil, errors.Wrapf(errors.ErrInput, "input %d sequence has consensus meaning", i)
			}
		}
	}

	outputs, _, err := r.varInt()
	if err != nil {
		return nil, errors.Wrap(err, "output count")
	}
	for i := uint64(0); i < outputs; i++ {
		value, err := r.u64()
		if err != nil {
			return nil, errors.Wrapf(err, "output %d value", i)
		}
		scriptLen, _, err := r.varInt()
		if err != nil {
			return nil, errors.Wrapf(err, "output %d script size", i)
		}
		script, err := r.bytes(scriptLen)
		if err != nil {
			return nil, errors.Wrapf(err, "output %d script", i)
		}
		if i == vout {
			tx.Out = &Output{
				Value:  value,
				Script: append([]byte(nil), script...),
			}
		}
	}

	if tx.Locktime, err = r.u32(); err != nil {
		return nil, errors.Wrap(err, "locktime")
	}
	if r.off != len(raw) {
		return nil, errors.Wrapf(errors.ErrInput, "%d trailing bytes", len(raw)-r.off)
	}

	tx.Hash = [32]byte(chainhash.DoubleHashH(raw))
	return &tx, nil
}

// Nonce returns the replay nonce encoded in the locktime and the first
// input sequence of the transaction.
func (tx *Tx) Nonce() (uint64, error) {
	return EncodeNonce(tx.Locktime, tx.Sequence)
}

// EncodeNonce combines a locktime and a sequence into a swap nonce.
//
//	((locktime - 500000000) << 24) | (sequence & 0xFFFFFF)
func EncodeNonce(locktime, sequence uint32) (uint64, error) {
	if locktime < LocktimeThreshold {
		return 0, errors.Wrapf(errors.ErrInput, "locktime %d below %d", locktime, LocktimeThreshold)
	}
	return uint64(locktime-LocktimeThreshold)<<24 | uint64(sequence&SequenceMask), nil
}

// DecodeNonce returns the locktime and the sequence (with the marker nibble
// set) that a transaction must use to carry given nonce.
func DecodeNonce(nonce uint64) (locktime uint32, sequence uint32, err error) {
	high := nonce >> 24
	if high > uint64(^uint32(0)-LocktimeThreshold) {
		return 0, 0, errors.Wrapf(errors.ErrOverflow, "nonce %d", nonce)
	}
	return uint32(high) + LocktimeThreshold, uint32(nonce&SequenceMask) | sequenceMarker, nil
}
