package cash

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x"
)

const maxMemoSize int = 128

// SendMsg moves tokens from the source wallet to the destination.
type SendMsg struct {
	Source      chainswap.Address `json:"source"`
	Destination chainswap.Address `json:"destination"`
	Amount      *x.Coin           `json:"amount"`
	Memo        string            `json:"memo,omitempty"`
}

var _ chainswap.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	if x.IsEmpty(m.Amount) {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	} else {
		errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	}
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.ErrInput)
	}
	return errs
}
