package relay

import "github.com/iov-one/chainswap/errors"

var (
	ErrTxVerifyProgramID     = errors.Register(1200, "invalid tx verify program id")
	ErrTxVerifyIx            = errors.Register(1201, "invalid tx verify instruction")
	ErrTxVerifyTxid          = errors.Register(1202, "invalid tx verify transaction id")
	ErrTxVerifyConfirmations = errors.Register(1203, "invalid tx verify confirmations")

	ErrHeightVerifyProgramID = errors.Register(1204, "invalid blockheight verify program id")
	ErrHeightVerifyIx        = errors.Register(1205, "invalid blockheight verify instruction")
	ErrHeightVerifyHeight    = errors.Register(1206, "invalid blockheight verify height")
	ErrHeightVerifyOperation = errors.Register(1207, "invalid blockheight verify operation")

	// ErrRelayRejected is returned when an instruction is well formed but
	// the relay does not attest the fact it describes.
	ErrRelayRejected = errors.Register(1208, "relay rejected attestation")
)
