package app

import (
	"testing"

	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/store"
	"github.com/iov-one/chainswap/weavetest"
	"github.com/iov-one/chainswap/x"
	"github.com/iov-one/chainswap/x/cash"
	"github.com/iov-one/chainswap/x/sigs"
	"github.com/iov-one/chainswap/x/swap"
	"github.com/stretchr/testify/require"
)

func TestTxEncoding(t *testing.T) {
	key := weavetest.NewKey()
	msg := &cash.SendMsg{
		Source:      weavetest.KeyAddress(key),
		Destination: weavetest.NewAddress(),
		Amount:      x.NewCoinp(42, "SOL"),
		Memo:        "lunch",
	}
	tx := signedTx(t, msg, key, 3)

	bin, err := EncodeTx(tx)
	require.NoError(t, err)
	decoded, err := DecodeTx(bin)
	require.NoError(t, err)
	require.Equal(t, tx, decoded)

	js, err := EncodeJSONTx(tx)
	require.NoError(t, err)
	decoded, err = DecodeJSONTx(js)
	require.NoError(t, err)
	require.Equal(t, tx, decoded)

	got, err := decoded.GetMsg()
	require.NoError(t, err)
	require.Equal(t, "cash/send", got.Path())

	_, err = DecodeTx([]byte("not a transaction"))
	require.True(t, errors.ErrInput.Is(err), "%+v", err)
	_, err = DecodeJSONTx([]byte(`{"msg": 5}`))
	require.True(t, errors.ErrInput.Is(err), "%+v", err)
}

func TestTxSignatures(t *testing.T) {
	key := weavetest.NewKey()
	owner := weavetest.KeyAddress(key)
	tx := signedTx(t, &swap.DepositMsg{Owner: owner, Amount: x.NewCoin(1, "USDC")}, key, 0)

	signers, err := sigs.VerifyTxSignatures(store.MemStore(), tx, testChainID)
	require.NoError(t, err)
	require.Equal(t, 1, len(signers))
	require.Equal(t, true, owner.Equals(signers[0]))

	// Signatures are bound to the chain.
	_, err = sigs.VerifyTxSignatures(store.MemStore(), tx, "other-chain")
	require.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	// Signatures do not cover other signatures.
	other := weavetest.NewKey()
	require.NoError(t, tx.Sign(other, testChainID, 0))
	signers, err = sigs.VerifyTxSignatures(store.MemStore(), tx, testChainID)
	require.NoError(t, err)
	require.Equal(t, 2, len(signers))
}

func TestEmptyTx(t *testing.T) {
	_, err := NewTx(nil).GetMsg()
	require.True(t, errors.ErrMsg.Is(err), "%+v", err)
}
