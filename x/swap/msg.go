package swap

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x"
	"github.com/iov-one/chainswap/x/relay"
)

const (
	pathInitializeMsg = "swap/initialize"
	pathClaimMsg      = "swap/claim"
	pathRefundMsg     = "swap/refund"
	pathDepositMsg    = "swap/deposit"
	pathWithdrawMsg   = "swap/withdraw"
	pathInitDataMsg   = "swap/init_data"
	pathWriteDataMsg  = "swap/write_data"
	pathCloseDataMsg  = "swap/close_data"

	// DataIDSize is the size of a data account identifier.
	DataIDSize = 32
)

var (
	_ chainswap.Msg = (*InitializeMsg)(nil)
	_ chainswap.Msg = (*ClaimMsg)(nil)
	_ chainswap.Msg = (*RefundMsg)(nil)
	_ chainswap.Msg = (*DepositMsg)(nil)
	_ chainswap.Msg = (*WithdrawMsg)(nil)
	_ chainswap.Msg = (*InitDataMsg)(nil)
	_ chainswap.Msg = (*WriteDataMsg)(nil)
	_ chainswap.Msg = (*CloseDataMsg)(nil)
)

// InitializeMsg creates a swap. It must be signed by both the offerer and
// the claimer.
type InitializeMsg struct {
	Swap Swap `json:"swap"`
	// TxoHash is the output commitment announced in the initialize event,
	// used by watchtowers to find the settlement transaction.
	TxoHash chainswap.HexBytes `json:"txo_hash,omitempty"`
	// AuthExpiry is the Unix time until which the counterparties agreed
	// to create this swap.
	AuthExpiry uint64 `json:"auth_expiry"`
}

func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

func (m *InitializeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Swap", m.Swap.Validate())
	if len(m.TxoHash) != 0 && len(m.TxoHash) != HashSize {
		errs = errors.AppendField(errs, "TxoHash", errors.ErrInput)
	}
	if m.AuthExpiry == 0 {
		errs = errors.AppendField(errs, "AuthExpiry", errors.ErrEmpty)
	}
	if m.Swap.PayIn && (m.Swap.SecurityDeposit != 0 || m.Swap.ClaimerBounty != 0) {
		errs = errors.AppendField(errs, "Swap", errors.Wrap(ErrInvalidPayIn, "deposits not allowed"))
	}
	return errs
}

// DataRef points to a data account holding the claim secret.
type DataRef struct {
	ID chainswap.HexBytes `json:"id"`
	// Writable declares that the claim can drain and remove the account.
	Writable bool `json:"writable"`
}

// ClaimMsg claims a swap. It can be submitted by anyone, for example
// a watchtower collecting the claimer bounty.
type ClaimMsg struct {
	Hash chainswap.HexBytes `json:"hash"`
	// Secret is the HTLC preimage, or the output index followed by the
	// raw settlement transaction. Must be empty if Data is set.
	Secret chainswap.HexBytes `json:"secret,omitempty"`
	// Data is the data account the secret is read from.
	Data *DataRef `json:"data,omitempty"`
	// Inclusion is the transaction inclusion attestation, required by
	// chain swaps.
	Inclusion *relay.Instruction `json:"inclusion,omitempty"`
}

func (ClaimMsg) Path() string {
	return pathClaimMsg
}

func (m *ClaimMsg) Validate() error {
	var errs error
	if len(m.Hash) != HashSize {
		errs = errors.AppendField(errs, "Hash", errors.ErrInput)
	}
	if m.Data != nil {
		if len(m.Secret) != 0 {
			errs = errors.AppendField(errs, "Secret", errors.Wrap(errors.ErrInput, "secret provided by data account"))
		}
		if len(m.Data.ID) != DataIDSize {
			errs = errors.AppendField(errs, "Data.ID", errors.ErrInput)
		}
	} else if len(m.Secret) == 0 {
		errs = errors.AppendField(errs, "Secret", errors.ErrEmpty)
	}
	if m.Inclusion != nil {
		errs = errors.AppendField(errs, "Inclusion", m.Inclusion.Validate())
	}
	return errs
}

// RefundMsg returns a swap to its offerer. It must be signed by the
// offerer.
type RefundMsg struct {
	Hash chainswap.HexBytes `json:"hash"`
	// AuthExpiry is zero for a refund after timeout. Otherwise it is the
	// expiry of the cooperative refund authorization signed by the
	// claimer.
	AuthExpiry uint64      `json:"auth_expiry"`
	Proof      RefundProof `json:"proof"`
}

func (RefundMsg) Path() string {
	return pathRefundMsg
}

func (m *RefundMsg) Validate() error {
	var errs error
	if len(m.Hash) != HashSize {
		errs = errors.AppendField(errs, "Hash", errors.ErrInput)
	}
	if m.Proof.Height != nil && m.Proof.Signature != nil {
		errs = errors.AppendField(errs, "Proof", errors.Wrap(errors.ErrInput, "only one proof allowed"))
	}
	if m.AuthExpiry == 0 && m.Proof.Signature != nil {
		errs = errors.AppendField(errs, "Proof", errors.Wrap(errors.ErrInput, "signature requires auth expiry"))
	}
	if m.AuthExpiry != 0 && m.Proof.Height != nil {
		errs = errors.AppendField(errs, "Proof", errors.Wrap(errors.ErrInput, "height proof for cooperative refund"))
	}
	if m.Proof.Height != nil {
		errs = errors.AppendField(errs, "Proof.Height", m.Proof.Height.Validate())
	}
	if m.Proof.Signature != nil {
		errs = errors.AppendField(errs, "Proof.Signature", m.Proof.Signature.Validate())
	}
	return errs
}

// DepositMsg moves tokens from the owner wallet to the internal balance.
type DepositMsg struct {
	Owner  chainswap.Address `json:"owner"`
	Amount x.Coin            `json:"amount"`
}

func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m *DepositMsg) Validate() error {
	return validateTransfer(m.Owner, m.Amount)
}

// WithdrawMsg moves tokens from the internal balance to the owner wallet.
type WithdrawMsg struct {
	Owner  chainswap.Address `json:"owner"`
	Amount x.Coin            `json:"amount"`
}

func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (m *WithdrawMsg) Validate() error {
	return validateTransfer(m.Owner, m.Amount)
}

func validateTransfer(owner chainswap.Address, amount x.Coin) error {
	var errs error
	errs = errors.AppendField(errs, "Owner", owner.Validate())
	if amount.IsZero() {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	} else {
		errs = errors.AppendField(errs, "Amount", amount.Validate())
	}
	return errs
}

// InitDataMsg creates a data account owned by the signer.
type InitDataMsg struct {
	ID       chainswap.HexBytes `json:"id"`
	Owner    chainswap.Address  `json:"owner"`
	Capacity uint32             `json:"capacity"`
}

func (InitDataMsg) Path() string {
	return pathInitDataMsg
}

func (m *InitDataMsg) Validate() error {
	var errs error
	if len(m.ID) != DataIDSize {
		errs = errors.AppendField(errs, "ID", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if m.Capacity == 0 {
		errs = errors.AppendField(errs, "Capacity", errors.ErrEmpty)
	}
	return errs
}

// WriteDataMsg writes a chunk of the data account payload.
type WriteDataMsg struct {
	ID     chainswap.HexBytes `json:"id"`
	Offset uint32             `json:"offset"`
	Data   chainswap.HexBytes `json:"data"`
}

func (WriteDataMsg) Path() string {
	return pathWriteDataMsg
}

func (m *WriteDataMsg) Validate() error {
	var errs error
	if len(m.ID) != DataIDSize {
		errs = errors.AppendField(errs, "ID", errors.ErrInput)
	}
	if len(m.Data) == 0 {
		errs = errors.AppendField(errs, "Data", errors.ErrEmpty)
	}
	return errs
}

// CloseDataMsg removes a data account, returning its deposit to the owner.
type CloseDataMsg struct {
	ID chainswap.HexBytes `json:"id"`
}

func (CloseDataMsg) Path() string {
	return pathCloseDataMsg
}

func (m *CloseDataMsg) Validate() error {
	if len(m.ID) != DataIDSize {
		return errors.Field("ID", errors.ErrInput, "invalid length")
	}
	return nil
}
