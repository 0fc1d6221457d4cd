package cash

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterAmino registers the messages of this package with given codec.
func RegisterAmino(c *amino.Codec) {
	c.RegisterConcrete(&SendMsg{}, "cash/send", nil)
}
