package swap

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/gconf"
	"github.com/iov-one/chainswap/x"
)

const packageName = "swap"

// Configuration holds the parameters of the swap extension.
type Configuration struct {
	// MaxConfirmations limits the confirmations a swap can require. It
	// cannot exceed the relay pruning window.
	MaxConfirmations uint16 `json:"max_confirmations"`
	// NativeTicker is the currency of storage and security deposits and
	// of claimer bounties.
	NativeTicker string `json:"native_ticker"`
	// StorageDeposit is reserved by every swap and returned to its
	// initializer on settlement.
	StorageDeposit uint64 `json:"storage_deposit"`
	// DataAccountDeposit is reserved by every data account and returned
	// on close or claim.
	DataAccountDeposit uint64 `json:"data_account_deposit"`
	// MaxDataSize limits the payload capacity of a data account.
	MaxDataSize uint32 `json:"max_data_size"`
}

func (c *Configuration) Validate() error {
	var errs error
	if c.MaxConfirmations == 0 || c.MaxConfirmations > MaxConfirmations {
		errs = errors.AppendField(errs, "MaxConfirmations",
			errors.Wrapf(ErrTooManyConfirmations, "must be within 1 and %d", MaxConfirmations))
	}
	if !x.IsCC(c.NativeTicker) {
		errs = errors.AppendField(errs, "NativeTicker", x.ErrCurrency)
	}
	if c.MaxDataSize == 0 {
		errs = errors.AppendField(errs, "MaxDataSize", errors.ErrEmpty)
	}
	return errs
}

func (c *Configuration) native(amount uint64) x.Coin {
	return x.NewCoin(amount, c.NativeTicker)
}

// LoadConfiguration returns the swap configuration stored in the database.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load swap configuration")
	}
	return &conf, nil
}

// Initializer stores the swap configuration from the genesis file.
type Initializer struct{}

var _ chainswap.Initializer = Initializer{}

func (Initializer) FromGenesis(opts chainswap.Options, db chainswap.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, packageName, &conf)
}
