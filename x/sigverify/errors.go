package sigverify

import "github.com/iov-one/chainswap/errors"

var (
	ErrInvalidProgram = errors.Register(1300, "signature verification: invalid program")
	ErrAccountsLength = errors.Register(1301, "signature verification: invalid accounts length")
	ErrDataLength     = errors.Register(1302, "signature verification: invalid data length")
	ErrInvalidHeader  = errors.Register(1303, "signature verification: invalid header")
	ErrInvalidData    = errors.Register(1304, "signature verification: invalid data")
	ErrBadSignature   = errors.Register(1305, "signature verification: bad signature")
)
