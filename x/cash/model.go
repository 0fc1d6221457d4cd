package cash

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/orm"
	"github.com/iov-one/chainswap/x"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the set of coins owned by a single address.
type Wallet struct {
	Coins x.Coins `json:"coins"`
}

var _ orm.Model = (*Wallet)(nil)

// Validate requires that all coins are in alphabetical order.
func (w *Wallet) Validate() error {
	return x.Coins(w.Coins).Validate()
}

// Bucket stores wallets by address.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket initializes a cash.Bucket with default name.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket(BucketName, &Wallet{}, cdc),
	}
}

// Balance returns the coins owned by given address. An address that never
// received anything owns nothing.
func (b Bucket) Balance(db chainswap.ReadOnlyKVStore, addr chainswap.Address) (x.Coins, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return w.Coins, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// Save stores the coins of given address. A wallet with no coins is
// removed.
func (b Bucket) Save(db chainswap.KVStore, addr chainswap.Address, coins x.Coins) error {
	if coins.IsEmpty() {
		switch err := b.Delete(db, addr); {
		case err == nil, errors.ErrNotFound.Is(err):
			return nil
		default:
			return err
		}
	}
	return b.Put(db, addr, &Wallet{Coins: coins})
}
