package swap

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x"
	"github.com/iov-one/chainswap/x/cash"
)

// InitDataHandler creates data accounts.
type InitDataHandler struct {
	auth x.Authenticator
	b    Buckets
	bank cash.Controller
}

var _ chainswap.Handler = InitDataHandler{}

func (h InitDataHandler) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &chainswap.CheckResult{}, nil
}

// Deliver stamps the owner on a new data account and funds its deposit.
func (h InitDataHandler) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if conf.DataAccountDeposit > 0 {
		if err := h.bank.MoveCoins(db, msg.Owner, DataAddress(msg.ID), conf.native(conf.DataAccountDeposit)); err != nil {
			return nil, errors.Wrap(err, "deposit")
		}
	}
	d := &DataAccount{
		Owner:   msg.Owner,
		Payload: make([]byte, msg.Capacity),
	}
	if err := h.b.Data.Put(db, msg.ID, d); err != nil {
		return nil, errors.Wrap(err, "save data account")
	}
	return &chainswap.DeliverResult{Data: msg.ID}, nil
}

func (h InitDataHandler) validate(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*InitDataMsg, *Configuration, error) {
	var msg InitDataMsg
	if err := chainswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	if msg.Capacity > conf.MaxDataSize {
		return nil, nil, errors.Wrapf(errors.ErrInput, "capacity %d exceeds %d", msg.Capacity, conf.MaxDataSize)
	}
	if err := h.b.Data.Has(db, msg.ID); err == nil {
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "data account %X", []byte(msg.ID))
	}
	return &msg, conf, nil
}

// WriteDataHandler writes to data accounts.
type WriteDataHandler struct {
	auth x.Authenticator
	b    Buckets
}

var _ chainswap.Handler = WriteDataHandler{}

func (h WriteDataHandler) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &chainswap.CheckResult{}, nil
}

func (h WriteDataHandler) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	msg, d, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	copy(d.Payload[msg.Offset:], msg.Data)
	if err := h.b.Data.Put(db, msg.ID, d); err != nil {
		return nil, errors.Wrap(err, "save data account")
	}
	return &chainswap.DeliverResult{}, nil
}

func (h WriteDataHandler) validate(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*WriteDataMsg, *DataAccount, error) {
	var msg WriteDataMsg
	if err := chainswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	d, err := h.b.LoadData(db, msg.ID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, d.Owner) {
		return nil, nil, errors.Wrap(ErrInvalidUserData, "owner signature required")
	}
	if end := uint64(msg.Offset) + uint64(len(msg.Data)); end > uint64(len(d.Payload)) {
		return nil, nil, errors.Wrapf(errors.ErrInput, "write ends at %d, capacity %d", end, len(d.Payload))
	}
	return &msg, d, nil
}

// CloseDataHandler removes data accounts.
type CloseDataHandler struct {
	auth x.Authenticator
	b    Buckets
	bank cash.Controller
}

var _ chainswap.Handler = CloseDataHandler{}

func (h CloseDataHandler) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &chainswap.CheckResult{}, nil
}

// Deliver returns the data account deposit to its owner.
func (h CloseDataHandler) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	msg, d, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := cash.MoveAll(db, h.bank, DataAddress(msg.ID), d.Owner); err != nil {
		return nil, errors.Wrap(err, "drain data account")
	}
	if err := h.b.Data.Delete(db, msg.ID); err != nil {
		return nil, errors.Wrap(err, "delete data account")
	}
	return &chainswap.DeliverResult{}, nil
}

func (h CloseDataHandler) validate(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*CloseDataMsg, *DataAccount, error) {
	var msg CloseDataMsg
	if err := chainswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	d, err := h.b.LoadData(db, msg.ID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, d.Owner) {
		return nil, nil, errors.Wrap(ErrInvalidUserData, "owner signature required")
	}
	return &msg, d, nil
}
