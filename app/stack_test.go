package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/store"
	"github.com/iov-one/chainswap/weavetest"
	"github.com/iov-one/chainswap/x"
	"github.com/iov-one/chainswap/x/relay"
	"github.com/iov-one/chainswap/x/sigs"
	"github.com/iov-one/chainswap/x/swap"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

func testGenesis(t testing.TB, funded ...chainswap.Address) Genesis {
	t.Helper()
	type coin struct {
		Ticker string `json:"ticker"`
		Amount uint64 `json:"amount"`
	}
	type account struct {
		Address chainswap.Address `json:"address"`
		Coins   []coin            `json:"coins"`
	}
	var accounts []account
	for _, a := range funded {
		accounts = append(accounts, account{
			Address: a,
			Coins:   []coin{{"USDC", 1000}, {"SOL", 100}},
		})
	}
	opts := chainswap.Options{
		"cash":      mustJSON(t, accounts),
		"relay":     mustJSON(t, map[string]interface{}{"program_id": weavetest.NewAddress()}),
		"sigverify": mustJSON(t, map[string]interface{}{"program_id": weavetest.NewAddress()}),
		"swap": mustJSON(t, map[string]interface{}{
			"max_confirmations":    100,
			"native_ticker":        "SOL",
			"storage_deposit":      5,
			"data_account_deposit": 3,
			"max_data_size":        1024,
		}),
	}
	return Genesis{ChainID: testChainID, AppOptions: opts}
}

func mustJSON(t testing.TB, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	return raw
}

func newTestExecutor(t testing.TB, funded ...chainswap.Address) *Executor {
	t.Helper()
	db := store.MemStore()
	if err := InitChain(db, testGenesis(t, funded...), Initializers()); err != nil {
		t.Fatalf("cannot init chain: %s", err)
	}
	h, err := Stack(db, relay.NewMemRelay(800000))
	if err != nil {
		t.Fatalf("cannot build stack: %s", err)
	}
	exec, err := NewExecutor(db, h, WithClock(func() time.Time { return time.Unix(1700000000, 0) }))
	if err != nil {
		t.Fatalf("cannot create executor: %s", err)
	}
	return exec
}

func signedTx(t testing.TB, msg chainswap.Msg, key ed25519.PrivateKey, seq int64) *Tx {
	t.Helper()
	tx := NewTx(msg)
	if err := tx.Sign(key, testChainID, seq); err != nil {
		t.Fatalf("cannot sign: %s", err)
	}
	return tx
}

func TestStackDeposit(t *testing.T) {
	key := weavetest.NewKey()
	owner := weavetest.KeyAddress(key)
	exec := newTestExecutor(t, owner)

	deposit := &swap.DepositMsg{Owner: owner, Amount: x.NewCoin(400, "USDC")}

	// Signature is required.
	_, err := exec.Deliver(context.Background(), NewTx(deposit))
	require.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	tx := signedTx(t, deposit, key, 0)
	_, err = exec.Check(context.Background(), tx)
	require.NoError(t, err)
	_, err = exec.Deliver(context.Background(), tx)
	require.NoError(t, err)

	// Replaying the same transaction fails on the signer sequence.
	_, err = exec.Deliver(context.Background(), tx)
	require.True(t, sigs.ErrInvalidSequence.Is(err), "%+v", err)

	err = exec.View(func(db chainswap.ReadOnlyKVStore) error {
		acc, err := swap.NewBuckets().LoadAccount(db, owner, "USDC")
		if err != nil {
			return err
		}
		require.Equal(t, uint64(400), acc.Balance)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), exec.Height())
}

func TestStackWrongSigner(t *testing.T) {
	ownerKey, otherKey := weavetest.NewKey(), weavetest.NewKey()
	owner := weavetest.KeyAddress(ownerKey)
	exec := newTestExecutor(t, owner)

	deposit := &swap.DepositMsg{Owner: owner, Amount: x.NewCoin(10, "USDC")}
	_, err := exec.Deliver(context.Background(), signedTx(t, deposit, otherKey, 0))
	require.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	require.Equal(t, int64(0), exec.Height())
}

func TestStackUnknownMessage(t *testing.T) {
	exec := newTestExecutor(t)
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "unknown/path"}}
	_, err := exec.Deliver(context.Background(), tx)
	require.True(t, errors.ErrNotFound.Is(err), "%+v", err)
}
