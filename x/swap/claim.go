package swap

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/btc"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x/relay"
)

// voutSize is the size of the output index prefix of a chain proof.
const voutSize = 4

// ClaimVerifier decides if a secret satisfies the lock of a swap.
type ClaimVerifier struct {
	relay *relay.Checker
}

// NewClaimVerifier returns a verifier checking transaction inclusion
// attestations with given relay checker.
func NewClaimVerifier(rc *relay.Checker) *ClaimVerifier {
	return &ClaimVerifier{relay: rc}
}

// VerifyClaim returns the witness of a valid claim: the HTLC preimage, or
// the hash of the settlement transaction paying the swap.
//
// For chain swaps the secret is the little endian output index followed
// by the raw transaction, stripped of witness data. The inclusion
// attestation is required for all chain swaps.
func (v *ClaimVerifier) VerifyClaim(ctx chainswap.Context, s *Swap, inclusion *relay.Instruction, secret []byte) ([32]byte, error) {
	switch s.Kind {
	case KindHTLC:
		return verifyPreimage(s, secret)
	case KindChain, KindChainNonced, KindChainTxhash:
		txid, err := chainTxHash(s, secret)
		if err != nil {
			return txid, err
		}
		if inclusion == nil {
			return [32]byte{}, errors.Wrap(ErrMissingProof, "inclusion attestation")
		}
		if err := v.relay.VerifyInclusion(ctx, inclusion, txid, uint32(s.Confirmations)); err != nil {
			return [32]byte{}, err
		}
		return txid, nil
	default:
		return [32]byte{}, errors.Wrapf(ErrInvalidKind, "%d", s.Kind)
	}
}

func verifyPreimage(s *Swap, secret []byte) ([32]byte, error) {
	var preimage [32]byte
	if len(secret) < len(preimage) {
		return preimage, errors.Wrapf(ErrInvalidSecret, "secret too short: %d", len(secret))
	}
	copy(preimage[:], secret)
	hash := sha256.Sum256(preimage[:])
	if !bytes.Equal(hash[:], s.Hash) {
		return [32]byte{}, ErrInvalidSecret
	}
	return preimage, nil
}

// chainTxHash returns the hash of the settlement transaction, after
// checking that it pays the committed output.
func chainTxHash(s *Swap, secret []byte) ([32]byte, error) {
	var txid [32]byte
	if s.Kind == KindChainTxhash {
		copy(txid[:], s.Hash)
		return txid, nil
	}

	if len(secret) < voutSize {
		return txid, errors.Wrap(ErrInvalidTx, "missing output index")
	}
	vout := binary.LittleEndian.Uint32(secret[:voutSize])
	nonced := s.Kind == KindChainNonced
	tx, err := btc.ParseTx(secret[voutSize:], uint64(vout), nonced)
	if err != nil {
		return txid, errors.Wrap(ErrInvalidTx, err.Error())
	}
	if tx.Out == nil {
		return txid, errors.Wrapf(ErrInvalidVout, "output %d", vout)
	}

	commitment := btc.OutputCommitment(s.Nonce, tx.Out.Value, tx.Out.Script)
	if !bytes.Equal(commitment[:], s.Hash) {
		return txid, errors.Wrap(ErrInvalidSecret, "output commitment")
	}

	if nonced {
		nonce, err := tx.Nonce()
		if err != nil {
			return txid, errors.Wrap(ErrInvalidNonce, err.Error())
		}
		if nonce != s.Nonce {
			return txid, errors.Wrapf(ErrInvalidNonce, "want %d, got %d", s.Nonce, nonce)
		}
	}
	return tx.Hash, nil
}
