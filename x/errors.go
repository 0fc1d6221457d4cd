package x

import (
	"github.com/iov-one/chainswap/errors"
)

// Reserved codes 130~139
var (
	ErrCurrency = errors.Register(130, "invalid currency code")
	ErrCoin     = errors.Register(131, "invalid coin")
	ErrWallet   = errors.Register(132, "invalid wallet")
)
