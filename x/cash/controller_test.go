package cash

import (
	"math"
	"testing"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/store"
	"github.com/iov-one/chainswap/weavetest"
	"github.com/iov-one/chainswap/x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCoins(t *testing.T) {
	db := store.MemStore()
	addr := weavetest.NewAddress()
	addr2 := weavetest.NewAddress()

	controller := NewController(NewBucket())

	w, err := controller.Balance(db, addr)
	require.NoError(t, err)
	assert.True(t, w.IsEmpty())

	require.NoError(t, controller.IssueCoins(db, addr, x.NewCoin(500, "FOO")))
	require.NoError(t, controller.IssueCoins(db, addr, x.NewCoin(20, "FOO")))
	require.NoError(t, controller.IssueCoins(db, addr2, x.NewCoin(1, "DING")))

	w, err = controller.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(520), w.Amount("FOO"))
	assert.Equal(t, uint64(0), w.Amount("DING"))

	w2, err := controller.Balance(db, addr2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), w2.Amount("DING"))

	err = controller.IssueCoins(db, addr, x.NewCoin(math.MaxUint64, "FOO"))
	assert.True(t, errors.ErrOverflow.Is(err), "%+v", err)

	err = controller.IssueCoins(db, addr, x.NewCoin(1, "foo"))
	assert.True(t, x.ErrCurrency.Is(err), "%+v", err)
}

func TestMoveCoins(t *testing.T) {
	src := weavetest.NewAddress()
	dst := weavetest.NewAddress()
	empty := weavetest.NewAddress()

	cases := map[string]struct {
		from, to chainswap.Address
		amount   x.Coin
		wantErr  *errors.Error
		wantSrc  uint64
		wantDst  uint64
	}{
		"move part": {
			from: src, to: dst,
			amount:  x.NewCoin(40, "FOO"),
			wantSrc: 60,
			wantDst: 40,
		},
		"move everything": {
			from: src, to: dst,
			amount:  x.NewCoin(100, "FOO"),
			wantSrc: 0,
			wantDst: 100,
		},
		"move to self": {
			from: src, to: src,
			amount:  x.NewCoin(30, "FOO"),
			wantSrc: 100,
			wantDst: 0,
		},
		"too much": {
			from: src, to: dst,
			amount:  x.NewCoin(101, "FOO"),
			wantErr: errors.ErrInsufficientAmount,
			wantSrc: 100,
		},
		"other currency": {
			from: src, to: dst,
			amount:  x.NewCoin(1, "BAR"),
			wantErr: errors.ErrInsufficientAmount,
			wantSrc: 100,
		},
		"from empty wallet": {
			from: empty, to: dst,
			amount:  x.NewCoin(1, "FOO"),
			wantErr: errors.ErrInsufficientAmount,
			wantSrc: 100,
		},
		"zero": {
			from: src, to: dst,
			amount:  x.NewCoin(0, "FOO"),
			wantErr: errors.ErrAmount,
			wantSrc: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			controller := NewController(NewBucket())
			require.NoError(t, controller.IssueCoins(db, src, x.NewCoin(100, "FOO")))

			err := controller.MoveCoins(db, tc.from, tc.to, tc.amount)
			require.True(t, tc.wantErr.Is(err), "%+v", err)

			s, err := controller.Balance(db, src)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSrc, s.Amount("FOO"))
			d, err := controller.Balance(db, dst)
			require.NoError(t, err)
			assert.Equal(t, tc.wantDst, d.Amount("FOO"))
		})
	}
}

func TestMoveAll(t *testing.T) {
	db := store.MemStore()
	src := weavetest.NewAddress()
	dst := weavetest.NewAddress()
	controller := NewController(NewBucket())

	require.NoError(t, controller.IssueCoins(db, src, x.NewCoin(7, "FOO")))
	require.NoError(t, controller.IssueCoins(db, src, x.NewCoin(3, "BAR")))

	moved, err := MoveAll(db, controller, src, dst)
	require.NoError(t, err)
	assert.Len(t, moved, 2)

	s, err := controller.Balance(db, src)
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())

	d, err := controller.Balance(db, dst)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), d.Amount("FOO"))
	assert.Equal(t, uint64(3), d.Amount("BAR"))

	// Wallet removed once empty, so moving again is a no-op.
	moved, err = MoveAll(db, controller, src, dst)
	require.NoError(t, err)
	assert.Empty(t, moved)
}
