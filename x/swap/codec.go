package swap

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterAmino registers the messages of this package with given codec.
func RegisterAmino(c *amino.Codec) {
	c.RegisterConcrete(&InitializeMsg{}, "swap/initialize", nil)
	c.RegisterConcrete(&ClaimMsg{}, "swap/claim", nil)
	c.RegisterConcrete(&RefundMsg{}, "swap/refund", nil)
	c.RegisterConcrete(&DepositMsg{}, "swap/deposit", nil)
	c.RegisterConcrete(&WithdrawMsg{}, "swap/withdraw", nil)
	c.RegisterConcrete(&InitDataMsg{}, "swap/init_data", nil)
	c.RegisterConcrete(&WriteDataMsg{}, "swap/write_data", nil)
	c.RegisterConcrete(&CloseDataMsg{}, "swap/close_data", nil)
}
