package swap

import (
	"crypto/sha256"
	"math"
	"testing"

	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/store"
	"github.com/iov-one/chainswap/weavetest"
	"github.com/iov-one/chainswap/x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapValidate(t *testing.T) {
	lock := sha256.Sum256([]byte("lock"))
	valid := func() Swap {
		return Swap{
			Kind:     KindChainNonced,
			Nonce:    3,
			Hash:     lock[:],
			Amount:   1,
			Offerer:  weavetest.NewAddress(),
			Claimer:  weavetest.NewAddress(),
			Mint:     testMint,
			Sequence: 1,
		}
	}

	cases := map[string]struct {
		mutate  func(s *Swap)
		wantErr *errors.Error
	}{
		"valid":               {mutate: func(s *Swap) {}},
		"unknown kind":        {mutate: func(s *Swap) { s.Kind = kindCount }, wantErr: ErrInvalidKind},
		"nonce without nonce": {mutate: func(s *Swap) { s.Kind = KindChain }, wantErr: ErrInvalidSwapNonce},
		"short hash":          {mutate: func(s *Swap) { s.Hash = lock[:31] }, wantErr: errors.ErrInput},
		"zero amount":         {mutate: func(s *Swap) { s.Amount = 0 }, wantErr: errors.ErrAmount},
		"too many confirmations": {
			mutate:  func(s *Swap) { s.Confirmations = MaxConfirmations + 1 },
			wantErr: ErrTooManyConfirmations,
		},
		"pay in without wallet": {mutate: func(s *Swap) { s.PayIn = true }, wantErr: errors.ErrEmpty},
		"wallet without pay out": {
			mutate:  func(s *Swap) { s.ClaimerWallet = weavetest.NewAddress() },
			wantErr: errors.ErrInput,
		},
		"missing claimer": {mutate: func(s *Swap) { s.Claimer = nil }, wantErr: errors.ErrEmpty},
		"lowercase mint":  {mutate: func(s *Swap) { s.Mint = "usdc" }, wantErr: x.ErrCurrency},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := valid()
			tc.mutate(&s)
			if err := s.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestSwapReserve(t *testing.T) {
	s := Swap{SecurityDeposit: 10, ClaimerBounty: 20, Offerer: weavetest.NewAddress(), Claimer: weavetest.NewAddress()}
	assert.Equal(t, uint64(20), s.Reserved())
	assert.Equal(t, s.Claimer, s.Initializer())

	s.PayIn = true
	assert.Equal(t, s.Offerer, s.Initializer())

	s.Expiry = BlockheightExpiryThreshold - 1
	assert.True(t, s.ExpiresAtHeight())
	s.Expiry = BlockheightExpiryThreshold
	assert.False(t, s.ExpiresAtHeight())
}

func TestUserAccount(t *testing.T) {
	u := UserAccount{Owner: weavetest.NewAddress(), Mint: testMint}

	require.NoError(t, u.Credit(math.MaxUint64))
	assert.True(t, errors.ErrOverflow.Is(u.Credit(1)))
	assert.Equal(t, uint64(math.MaxUint64), u.Balance)

	require.NoError(t, u.Debit(math.MaxUint64))
	assert.Equal(t, uint64(0), u.Balance)
	assert.True(t, errors.ErrInsufficientAmount.Is(u.Debit(1)))

	u.RecordSuccess(KindChain, math.MaxUint64)
	u.RecordSuccess(KindChain, 5)
	assert.Equal(t, uint64(math.MaxUint64), u.SuccessVolume[KindChain])
	assert.Equal(t, uint64(2), u.SuccessCount[KindChain])
	assert.Equal(t, uint64(0), u.SuccessCount[KindHTLC])

	u.RecordFail(KindHTLC, 3)
	u.RecordCoopClose(KindChainTxhash, 4)
	assert.Equal(t, uint64(3), u.FailVolume[KindHTLC])
	assert.Equal(t, uint64(4), u.CoopCloseVolume[KindChainTxhash])
}

func TestBuckets(t *testing.T) {
	db := store.MemStore()
	b := NewBuckets()
	lock := sha256.Sum256([]byte("lock"))

	_, err := b.LoadSwap(db, lock[:])
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, b.Settlements.Put(db, lock[:], &Settlement{State: StateRefunded, Sequence: 1}))
	_, err = b.LoadSwap(db, lock[:])
	assert.True(t, ErrAlreadySettled.Is(err))

	owner := weavetest.NewAddress()
	_, err = b.LoadAccount(db, owner, testMint)
	assert.True(t, errors.ErrNotFound.Is(err))
	acc, err := b.LoadOrCreateAccount(db, owner, testMint)
	require.NoError(t, err)
	acc.Balance = 7
	require.NoError(t, b.SaveAccount(db, acc))

	loaded, err := b.LoadAccount(db, owner, testMint)
	require.NoError(t, err)
	assert.Equal(t, acc, loaded)

	// Accounts are kept per mint.
	_, err = b.LoadAccount(db, owner, "USDT")
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestDataAccountLayout(t *testing.T) {
	db := store.MemStore()
	b := NewBuckets()
	id := []byte("data-1")
	owner := weavetest.NewAddress()

	d := &DataAccount{Owner: owner, Payload: []byte{0xde, 0xad, 0xbe, 0xef}}
	require.NoError(t, b.Data.Put(db, id, d))
	loaded, err := b.LoadData(db, id)
	require.NoError(t, err)

	raw := loaded.Bytes()
	require.Len(t, raw, len(owner)+4)
	assert.Equal(t, []byte(owner), raw[:len(owner)])
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, raw[len(owner):])

	// The serialized form is a copy.
	raw[0] ^= 0xFF
	assert.Equal(t, owner, loaded.Owner)
}

func TestKind(t *testing.T) {
	for k := KindHTLC; k < kindCount; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseKind("lightning")
	assert.True(t, ErrInvalidKind.Is(err))
	assert.Equal(t, "Kind(7)", Kind(7).String())
	assert.False(t, KindHTLC.IsChain())
	assert.True(t, KindChainTxhash.IsChain())
}
