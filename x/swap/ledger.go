package swap

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x"
	"github.com/iov-one/chainswap/x/cash"
)

// DepositHandler moves tokens into the internal balance.
type DepositHandler struct {
	auth x.Authenticator
	b    Buckets
	bank cash.Controller
}

var _ chainswap.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &chainswap.CheckResult{}, nil
}

func (h DepositHandler) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bank.MoveCoins(db, msg.Owner, VaultAddress(msg.Amount.Ticker), msg.Amount); err != nil {
		return nil, err
	}
	acc, err := h.b.LoadOrCreateAccount(db, msg.Owner, msg.Amount.Ticker)
	if err != nil {
		return nil, err
	}
	if err := acc.Credit(msg.Amount.Amount); err != nil {
		return nil, err
	}
	if err := h.b.SaveAccount(db, acc); err != nil {
		return nil, errors.Wrap(err, "save account")
	}
	return &chainswap.DeliverResult{}, nil
}

func (h DepositHandler) validate(ctx chainswap.Context, tx chainswap.Tx) (*DepositMsg, error) {
	var msg DepositMsg
	if err := chainswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	return &msg, nil
}

// WithdrawHandler moves tokens out of the internal balance.
type WithdrawHandler struct {
	auth x.Authenticator
	b    Buckets
	bank cash.Controller
}

var _ chainswap.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &chainswap.CheckResult{}, nil
}

func (h WithdrawHandler) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	msg, acc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := acc.Debit(msg.Amount.Amount); err != nil {
		return nil, err
	}
	if err := h.b.SaveAccount(db, acc); err != nil {
		return nil, errors.Wrap(err, "save account")
	}
	if err := h.bank.MoveCoins(db, VaultAddress(msg.Amount.Ticker), msg.Owner, msg.Amount); err != nil {
		return nil, err
	}
	return &chainswap.DeliverResult{}, nil
}

func (h WithdrawHandler) validate(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*WithdrawMsg, *UserAccount, error) {
	var msg WithdrawMsg
	if err := chainswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	acc, err := h.b.LoadAccount(db, msg.Owner, msg.Amount.Ticker)
	if err != nil {
		return nil, nil, err
	}
	if acc.Balance < msg.Amount.Amount {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientAmount, "balance %d", acc.Balance)
	}
	return &msg, acc, nil
}
