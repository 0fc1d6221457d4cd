package swap

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/btc"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/gconf"
	"github.com/iov-one/chainswap/store"
	"github.com/iov-one/chainswap/weavetest"
	"github.com/iov-one/chainswap/x"
	"github.com/iov-one/chainswap/x/cash"
	"github.com/iov-one/chainswap/x/relay"
	"github.com/iov-one/chainswap/x/sigverify"
)

const (
	testMint   = "USDC"
	testNative = "SOL"
)

var testConf = Configuration{
	MaxConfirmations:   100,
	NativeTicker:       testNative,
	StorageDeposit:     5,
	DataAccountDeposit: 3,
	MaxDataSize:        1024,
}

// env holds a fresh store with the swap configuration and the checkers
// backed by an in memory relay.
type env struct {
	db           store.CacheableKVStore
	bank         cash.BaseController
	b            Buckets
	backend      *relay.MemRelay
	relayProgram chainswap.Address
	sigProgram   chainswap.Address
	claims       *ClaimVerifier
	refunds      *RefundAuthorizer
}

func newEnv(t testing.TB) *env {
	t.Helper()
	db := store.MemStore()
	conf := testConf
	if err := gconf.Save(db, packageName, &conf); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}
	e := &env{
		db:           db,
		bank:         cash.NewController(cash.NewBucket()),
		b:            NewBuckets(),
		backend:      relay.NewMemRelay(1000),
		relayProgram: weavetest.NewAddress(),
		sigProgram:   weavetest.NewAddress(),
	}
	rc := relay.NewChecker(e.relayProgram, e.backend)
	e.claims = NewClaimVerifier(rc)
	e.refunds = NewRefundAuthorizer(rc, sigverify.NewChecker(e.sigProgram))
	return e
}

// router collects handlers by message path.
type router map[string]chainswap.Handler

func (r router) Handle(m chainswap.Msg, h chainswap.Handler) {
	r[m.Path()] = h
}

func (e *env) router(auth *weavetest.CtxAuth) router {
	r := make(router)
	RegisterRoutes(r, auth, e.bank, e.claims, e.refunds)
	return r
}

func (e *env) issue(t testing.TB, addr chainswap.Address, amount uint64, ticker string) {
	t.Helper()
	if err := e.bank.IssueCoins(e.db, addr, x.NewCoin(amount, ticker)); err != nil {
		t.Fatalf("cannot issue coins: %s", err)
	}
}

func (e *env) balance(t testing.TB, addr chainswap.Address, ticker string) uint64 {
	t.Helper()
	coins, err := e.bank.Balance(e.db, addr)
	if err != nil {
		t.Fatalf("cannot load balance: %s", err)
	}
	return coins.Amount(ticker)
}

func (e *env) account(t testing.TB, owner chainswap.Address) *UserAccount {
	t.Helper()
	acc, err := e.b.LoadAccount(e.db, owner, testMint)
	if err != nil {
		t.Fatalf("cannot load account: %s", err)
	}
	return acc
}

// settlementOutput is the output paying the offerer on the settlement
// chain.
var settlementOutput = []byte{0x00, 0x14, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

// chainTx returns a raw settlement transaction paying value to the
// settlement output at index 1. A non zero nonce is encoded in the
// locktime and input sequence.
func chainTx(t testing.TB, nonce uint64, value uint64) ([]byte, [32]byte) {
	t.Helper()
	tx := wire.NewMsgTx(2)
	in := wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{7}, 0), []byte{0x51}, nil)
	if nonce != 0 {
		locktime, sequence, err := btc.DecodeNonce(nonce)
		if err != nil {
			t.Fatalf("cannot decode nonce: %s", err)
		}
		tx.LockTime = locktime
		in.Sequence = sequence
	}
	tx.AddTxIn(in)
	tx.AddTxOut(wire.NewTxOut(1000, []byte{0x6a}))
	tx.AddTxOut(wire.NewTxOut(int64(value), settlementOutput))

	var buf bytes.Buffer
	if err := tx.SerializeNoWitness(&buf); err != nil {
		t.Fatalf("cannot serialize: %s", err)
	}
	return buf.Bytes(), [32]byte(tx.TxHash())
}

// chainSecret prefixes the raw transaction with the output index.
func chainSecret(vout uint32, raw []byte) []byte {
	secret := make([]byte, 4, 4+len(raw))
	binary.LittleEndian.PutUint32(secret, vout)
	return append(secret, raw...)
}

var testAuth = &weavetest.CtxAuth{Key: "signers"}

// run checks and delivers msg on a cache of the store, signed by given
// signers. The cache is written only if both succeed.
func (e *env) run(ctx chainswap.Context, msg chainswap.Msg, signers ...chainswap.Address) (*chainswap.DeliverResult, error) {
	h, ok := e.router(testAuth)[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", msg.Path())
	}
	ctx = testAuth.SetSigners(ctx, signers...)
	tx := &weavetest.Tx{Msg: msg}

	cache := e.db.CacheWrap()
	if _, err := h.Check(ctx, cache, tx); err != nil {
		cache.Discard()
		return nil, err
	}
	res, err := h.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	return res, cache.Write()
}
