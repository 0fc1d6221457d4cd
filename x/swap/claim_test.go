package swap

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/btc"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x/relay"
	"github.com/stretchr/testify/assert"
)

func TestVerifyClaim(t *testing.T) {
	e := newEnv(t)

	preimage := sha256.Sum256([]byte("preimage"))
	lock := sha256.Sum256(preimage[:])
	flipped := preimage
	flipped[31] ^= 0x01

	const value = 250000
	raw, txid := chainTx(t, 0, value)
	e.backend.Include(txid, 6)
	commitment := btc.OutputCommitment(0, value, settlementOutput)

	const nonce = 12345<<24 | 42
	rawNonced, txidNonced := chainTx(t, nonce, value)
	e.backend.Include(txidNonced, 6)
	commitmentNonced := btc.OutputCommitment(nonce, value, settlementOutput)

	rawOtherNonce, txidOtherNonce := chainTx(t, nonce+1, value)
	e.backend.Include(txidOtherNonce, 6)

	rawUnconfirmed, unconfirmed := chainTx(t, 0, value+1)
	commitmentUnconfirmed := btc.OutputCommitment(0, value+1, settlementOutput)

	inclusion := func(txid [32]byte) *relay.Instruction {
		return relay.NewInclusionInstruction(e.relayProgram, txid, 6)
	}

	cases := map[string]struct {
		swap        Swap
		secret      []byte
		inclusion   *relay.Instruction
		wantWitness [32]byte
		wantErr     *errors.Error
	}{
		"htlc preimage": {
			swap:        Swap{Kind: KindHTLC, Hash: lock[:]},
			secret:      preimage[:],
			wantWitness: preimage,
		},
		"htlc secret longer than a preimage": {
			swap:        Swap{Kind: KindHTLC, Hash: lock[:]},
			secret:      append(preimage[:], 1, 2, 3),
			wantWitness: preimage,
		},
		"htlc preimage with a flipped bit": {
			swap:    Swap{Kind: KindHTLC, Hash: lock[:]},
			secret:  flipped[:],
			wantErr: ErrInvalidSecret,
		},
		"htlc secret too short": {
			swap:    Swap{Kind: KindHTLC, Hash: lock[:]},
			secret:  preimage[:31],
			wantErr: ErrInvalidSecret,
		},
		"chain settlement transaction": {
			swap:        Swap{Kind: KindChain, Hash: commitment[:], Confirmations: 6},
			secret:      chainSecret(1, raw),
			inclusion:   inclusion(txid),
			wantWitness: txid,
		},
		"chain without inclusion attestation": {
			swap:    Swap{Kind: KindChain, Hash: commitment[:], Confirmations: 6},
			secret:  chainSecret(1, raw),
			wantErr: ErrMissingProof,
		},
		"chain attestation with other confirmations": {
			swap:      Swap{Kind: KindChain, Hash: commitment[:], Confirmations: 3},
			secret:    chainSecret(1, raw),
			inclusion: inclusion(txid),
			wantErr:   relay.ErrTxVerifyConfirmations,
		},
		"chain transaction not confirmed by the relay": {
			swap:      Swap{Kind: KindChain, Hash: commitmentUnconfirmed[:], Confirmations: 6},
			secret:    chainSecret(1, rawUnconfirmed),
			inclusion: inclusion(unconfirmed),
			wantErr:   relay.ErrRelayRejected,
		},
		"chain output not paying the commitment": {
			swap:      Swap{Kind: KindChain, Hash: commitment[:], Confirmations: 6},
			secret:    chainSecret(0, raw),
			inclusion: inclusion(txid),
			wantErr:   ErrInvalidSecret,
		},
		"chain output index out of range": {
			swap:      Swap{Kind: KindChain, Hash: commitment[:], Confirmations: 6},
			secret:    chainSecret(2, raw),
			inclusion: inclusion(txid),
			wantErr:   ErrInvalidVout,
		},
		"chain truncated transaction": {
			swap:      Swap{Kind: KindChain, Hash: commitment[:], Confirmations: 6},
			secret:    chainSecret(1, raw[:len(raw)-1]),
			inclusion: inclusion(txid),
			wantErr:   ErrInvalidTx,
		},
		"chain secret without output index": {
			swap:    Swap{Kind: KindChain, Hash: commitment[:], Confirmations: 6},
			secret:  []byte{1, 0},
			wantErr: ErrInvalidTx,
		},
		"nonced settlement transaction": {
			swap:        Swap{Kind: KindChainNonced, Nonce: nonce, Hash: commitmentNonced[:], Confirmations: 6},
			secret:      chainSecret(1, rawNonced),
			inclusion:   inclusion(txidNonced),
			wantWitness: txidNonced,
		},
		"nonced transaction carrying another nonce": {
			swap:      Swap{Kind: KindChainNonced, Nonce: nonce, Hash: commitmentNonced[:], Confirmations: 6},
			secret:    chainSecret(1, rawOtherNonce),
			inclusion: inclusion(txidOtherNonce),
			wantErr:   ErrInvalidNonce,
		},
		"nonced transaction without nonce": {
			swap:      Swap{Kind: KindChainNonced, Nonce: nonce, Hash: commitmentNonced[:], Confirmations: 6},
			secret:    chainSecret(1, raw),
			inclusion: inclusion(txid),
			wantErr:   ErrInvalidNonce,
		},
		"txhash swap needs only the attestation": {
			swap:        Swap{Kind: KindChainTxhash, Hash: txid[:], Confirmations: 6},
			secret:      []byte{0},
			inclusion:   inclusion(txid),
			wantWitness: txid,
		},
		"txhash swap attested for another transaction": {
			swap:      Swap{Kind: KindChainTxhash, Hash: txid[:], Confirmations: 6},
			secret:    []byte{0},
			inclusion: inclusion(txidNonced),
			wantErr:   relay.ErrTxVerifyTxid,
		},
		"unknown kind": {
			swap:    Swap{Kind: Kind(9), Hash: lock[:]},
			secret:  preimage[:],
			wantErr: ErrInvalidKind,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var ctx chainswap.Context = context.Background()
			witness, err := e.claims.VerifyClaim(ctx, &tc.swap, tc.inclusion, tc.secret)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantWitness, witness)
			}
		})
	}
}
