package swap

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x/relay"
	"github.com/iov-one/chainswap/x/sigverify"
)

// RefundProof carries the attestation authorizing a refund. At most one of
// the fields is set: the claimer signature for a cooperative refund, or
// the block height attestation for a refund after a height expiry.
type RefundProof struct {
	Height    *relay.Instruction     `json:"height,omitempty"`
	Signature *sigverify.Instruction `json:"signature,omitempty"`
}

// RefundAuthorizer decides whether a swap can be refunded.
type RefundAuthorizer struct {
	relay *relay.Checker
	sigs  *sigverify.Checker
}

// NewRefundAuthorizer returns an authorizer using given checkers.
func NewRefundAuthorizer(rc *relay.Checker, sc *sigverify.Checker) *RefundAuthorizer {
	return &RefundAuthorizer{relay: rc, sigs: sc}
}

// AuthorizeRefund returns whether the refund is cooperative or an error if
// it is not authorized. A zero authExpiry requests a refund after timeout,
// any other value a cooperative refund signed by the claimer and valid
// until authExpiry.
func (a *RefundAuthorizer) AuthorizeRefund(ctx chainswap.Context, s *Swap, authExpiry uint64, proof RefundProof) (bool, error) {
	if authExpiry > 0 {
		return true, a.verifyCooperative(ctx, s, authExpiry, proof.Signature)
	}
	return false, a.verifyTimeout(ctx, s, proof.Height)
}

func (a *RefundAuthorizer) verifyCooperative(ctx chainswap.Context, s *Swap, authExpiry uint64, ix *sigverify.Instruction) error {
	if !inTheFuture(ctx, authExpiry) {
		return errors.Wrapf(ErrAuthExpired, "authorization valid until %d", authExpiry)
	}
	if ix == nil {
		return errors.Wrap(ErrMissingProof, "claimer signature")
	}
	return a.sigs.VerifySignature(ix, s.Claimer, RefundDigest(s, authExpiry))
}

func (a *RefundAuthorizer) verifyTimeout(ctx chainswap.Context, s *Swap, ix *relay.Instruction) error {
	if s.ExpiresAtHeight() {
		if ix == nil {
			return errors.Wrap(ErrMissingProof, "block height attestation")
		}
		return a.relay.VerifyHeight(ctx, ix, uint32(s.Expiry), relay.OpGreater)
	}
	if !inThePast(ctx, s.Expiry) {
		return errors.Wrapf(ErrNotExpiredYet, "expires at %d", s.Expiry)
	}
	return nil
}

// RefundMessage returns the message the claimer signs to allow
// a cooperative refund.
func RefundMessage(s *Swap, authExpiry uint64) []byte {
	msg := make([]byte, 0, 6+8+8+8+len(s.Hash)+8)
	msg = append(msg, "refund"...)
	msg = appendUint64(msg, s.Amount)
	msg = appendUint64(msg, s.Expiry)
	msg = appendUint64(msg, s.Sequence)
	msg = append(msg, s.Hash...)
	return appendUint64(msg, authExpiry)
}

// RefundDigest returns the hash of the refund message.
func RefundDigest(s *Swap, authExpiry uint64) [32]byte {
	return sha256.Sum256(RefundMessage(s, authExpiry))
}

func appendUint64(b []byte, v uint64) []byte {
	var raw [8]byte
	binary.LittleEndian.PutUint64(raw[:], v)
	return append(b, raw[:]...)
}

// unixTime converts a message timestamp, saturating values beyond the
// int64 range so they compare as far in the future.
func unixTime(ts uint64) chainswap.UnixTime {
	if ts > math.MaxInt64 {
		return chainswap.UnixTime(math.MaxInt64)
	}
	return chainswap.UnixTime(ts)
}

func inTheFuture(ctx chainswap.Context, ts uint64) bool {
	return chainswap.InTheFuture(ctx, unixTime(ts))
}

func inThePast(ctx chainswap.Context, ts uint64) bool {
	return chainswap.InThePast(ctx, unixTime(ts))
}
