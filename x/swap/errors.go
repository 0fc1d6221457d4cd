package swap

import (
	"github.com/iov-one/chainswap/errors"
)

// x/swap reserves 1100 ~ 1199.
var (
	ErrAuthExpired               = errors.Register(1100, "authorization expired")
	ErrNotExpiredYet             = errors.Register(1101, "swap not expired yet")
	ErrAlreadyExpired            = errors.Register(1102, "swap already expired")
	ErrInvalidSecret             = errors.Register(1103, "invalid secret")
	ErrInvalidTx                 = errors.Register(1104, "invalid settlement transaction")
	ErrInvalidVout               = errors.Register(1105, "invalid transaction output")
	ErrInvalidNonce              = errors.Register(1106, "invalid transaction nonce")
	ErrTooManyConfirmations      = errors.Register(1107, "too many confirmations required")
	ErrInvalidKind               = errors.Register(1108, "invalid swap kind")
	ErrInvalidSwapNonce          = errors.Register(1109, "nonce not allowed for swap kind")
	ErrInvalidAccountWritability = errors.Register(1110, "invalid account writability")
	ErrInvalidUserData           = errors.Register(1111, "invalid user data")
	ErrAlreadySettled            = errors.Register(1112, "swap already settled")
	ErrMissingProof              = errors.Register(1113, "missing proof")
	ErrInvalidPayIn              = errors.Register(1114, "invalid pay in")
)
