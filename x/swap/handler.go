package swap

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x"
	"github.com/iov-one/chainswap/x/cash"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r chainswap.Registry, auth x.Authenticator, bank cash.Controller, claims *ClaimVerifier, refunds *RefundAuthorizer) {
	b := NewBuckets()
	r.Handle(&InitializeMsg{}, InitializeHandler{auth: auth, b: b, bank: bank})
	r.Handle(&ClaimMsg{}, ClaimHandler{auth: auth, b: b, bank: bank, claims: claims})
	r.Handle(&RefundMsg{}, RefundHandler{auth: auth, b: b, bank: bank, refunds: refunds})
	r.Handle(&DepositMsg{}, DepositHandler{auth: auth, b: b, bank: bank})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{auth: auth, b: b, bank: bank})
	r.Handle(&InitDataMsg{}, InitDataHandler{auth: auth, b: b, bank: bank})
	r.Handle(&WriteDataMsg{}, WriteDataHandler{auth: auth, b: b})
	r.Handle(&CloseDataMsg{}, CloseDataHandler{auth: auth, b: b, bank: bank})
}

//---- initialize

// InitializeHandler creates swaps.
type InitializeHandler struct {
	auth x.Authenticator
	b    Buckets
	bank cash.Controller
}

var _ chainswap.Handler = InitializeHandler{}

func (h InitializeHandler) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &chainswap.CheckResult{}, nil
}

// Deliver locks the swap amount in the vault and funds the swap reserve
// from the initializer.
func (h InitializeHandler) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	s := &msg.Swap
	amount := x.NewCoin(s.Amount, s.Mint)

	if s.PayIn {
		if err := h.bank.MoveCoins(db, s.OffererWallet, VaultAddress(s.Mint), amount); err != nil {
			return nil, errors.Wrap(err, "pay in")
		}
	} else {
		offerer, err := h.b.LoadAccount(db, s.Offerer, s.Mint)
		if err != nil {
			return nil, errors.Wrap(err, "offerer")
		}
		if err := offerer.Debit(s.Amount); err != nil {
			return nil, errors.Wrap(err, "offerer")
		}
		if err := h.b.SaveAccount(db, offerer); err != nil {
			return nil, errors.Wrap(err, "save offerer")
		}
	}

	reserve, err := checkedAdd(conf.StorageDeposit, s.Reserved())
	if err != nil {
		return nil, errors.Wrap(err, "reserve")
	}
	if reserve > 0 {
		if err := h.bank.MoveCoins(db, s.Initializer(), ReserveAddress(s.Hash), conf.native(reserve)); err != nil {
			return nil, errors.Wrap(err, "fund reserve")
		}
	}

	if err := h.b.Swaps.Put(db, s.Hash, s); err != nil {
		return nil, errors.Wrap(err, "save swap")
	}

	chainswap.GetLogger(ctx).Info("swap initialized",
		"hash", s.Hash, "kind", s.Kind, "amount", amount, "reserve", reserve)

	return &chainswap.DeliverResult{
		Data: s.Hash,
		Events: []chainswap.Event{InitializeEvent{
			Hash:     s.Hash,
			TxoHash:  msg.TxoHash,
			Nonce:    s.Nonce,
			Kind:     s.Kind,
			Sequence: s.Sequence,
		}},
	}, nil
}

func (h InitializeHandler) validate(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*InitializeMsg, *Configuration, error) {
	var msg InitializeMsg
	if err := chainswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	s := &msg.Swap

	if s.Confirmations > conf.MaxConfirmations {
		return nil, nil, errors.Wrapf(ErrTooManyConfirmations, "%d > %d", s.Confirmations, conf.MaxConfirmations)
	}
	if !inTheFuture(ctx, msg.AuthExpiry) {
		return nil, nil, errors.Wrapf(ErrAuthExpired, "authorization valid until %d", msg.AuthExpiry)
	}
	if !s.ExpiresAtHeight() && !inTheFuture(ctx, s.Expiry) {
		return nil, nil, errors.Wrapf(ErrAlreadyExpired, "expired at %d", s.Expiry)
	}

	if !x.HasAllAddresses(ctx, h.auth, s.Offerer, s.Claimer) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "offerer and claimer signatures required")
	}
	if s.PayIn && !h.auth.HasAddress(ctx, s.OffererWallet) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "offerer wallet signature required")
	}

	if err := h.b.Swaps.Has(db, s.Hash); err == nil {
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "swap %X", []byte(s.Hash))
	}
	if err := h.b.Settlements.Has(db, s.Hash); err == nil {
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "swap %X already settled", []byte(s.Hash))
	}
	if !s.PayOut {
		if _, err := h.b.LoadAccount(db, s.Claimer, s.Mint); err != nil {
			return nil, nil, errors.Wrap(err, "claimer")
		}
	}
	return &msg, conf, nil
}

//---- claim

// ClaimHandler pays swaps to their claimers.
type ClaimHandler struct {
	auth   x.Authenticator
	b      Buckets
	bank   cash.Controller
	claims *ClaimVerifier
}

var _ chainswap.Handler = ClaimHandler{}

func (h ClaimHandler) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &chainswap.CheckResult{}, nil
}

// Deliver pays the swap amount to the claimer, the bounty to the signer
// and the rest of the reserve to the initializer.
func (h ClaimHandler) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	c, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	s := c.swap

	if c.data != nil {
		if _, err := cash.MoveAll(db, h.bank, DataAddress(c.data), c.signer); err != nil {
			return nil, errors.Wrap(err, "drain data account")
		}
		if err := h.b.Data.Delete(db, c.data); err != nil {
			return nil, errors.Wrap(err, "delete data account")
		}
	}

	if s.PayOut {
		amount := x.NewCoin(s.Amount, s.Mint)
		if err := h.bank.MoveCoins(db, VaultAddress(s.Mint), s.ClaimerWallet, amount); err != nil {
			return nil, errors.Wrap(err, "pay out")
		}
	} else {
		claimer, err := h.b.LoadAccount(db, s.Claimer, s.Mint)
		if err != nil {
			return nil, errors.Wrap(err, "claimer")
		}
		if err := claimer.Credit(s.Amount); err != nil {
			return nil, errors.Wrap(err, "claimer")
		}
		claimer.RecordSuccess(s.Kind, s.Amount)
		if err := h.b.SaveAccount(db, claimer); err != nil {
			return nil, errors.Wrap(err, "save claimer")
		}
	}

	reserve := ReserveAddress(s.Hash)
	if s.ClaimerBounty > 0 {
		conf, err := LoadConfiguration(db)
		if err != nil {
			return nil, err
		}
		if err := h.bank.MoveCoins(db, reserve, c.signer, conf.native(s.ClaimerBounty)); err != nil {
			return nil, errors.Wrap(err, "pay bounty")
		}
	}
	if _, err := cash.MoveAll(db, h.bank, reserve, s.Initializer()); err != nil {
		return nil, errors.Wrap(err, "close reserve")
	}

	if err := settle(ctx, db, h.b, s, StateClaimed, c.witness[:]); err != nil {
		return nil, err
	}

	chainswap.GetLogger(ctx).Info("swap claimed",
		"hash", s.Hash, "kind", s.Kind, "signer", c.signer)

	return &chainswap.DeliverResult{
		Data: c.witness[:],
		Events: []chainswap.Event{ClaimEvent{
			Hash:     s.Hash,
			Secret:   c.witness[:],
			Sequence: s.Sequence,
		}},
	}, nil
}

type claim struct {
	swap    *Swap
	signer  chainswap.Address
	data    []byte
	witness [32]byte
}

func (h ClaimHandler) validate(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*claim, error) {
	var msg ClaimMsg
	if err := chainswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	s, err := h.b.LoadSwap(db, msg.Hash)
	if err != nil {
		return nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}

	c := claim{swap: s, signer: signer}
	secret := []byte(msg.Secret)
	if msg.Data != nil {
		if !msg.Data.Writable {
			return nil, errors.Wrap(ErrInvalidAccountWritability, "data account")
		}
		d, err := h.b.LoadData(db, msg.Data.ID)
		if err != nil {
			return nil, err
		}
		if !d.Owner.Equals(signer) {
			return nil, errors.Wrap(ErrInvalidUserData, "data account owner")
		}
		secret = d.Payload
		c.data = msg.Data.ID
	}

	c.witness, err = h.claims.VerifyClaim(ctx, s, msg.Inclusion, secret)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

//---- refund

// RefundHandler returns swaps to their offerers.
type RefundHandler struct {
	auth    x.Authenticator
	b       Buckets
	bank    cash.Controller
	refunds *RefundAuthorizer
}

var _ chainswap.Handler = RefundHandler{}

func (h RefundHandler) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &chainswap.CheckResult{}, nil
}

// Deliver returns the swap amount to the offerer. After a timeout the
// security deposit is paid to the offerer, and the rest of the reserve
// goes back to the initializer.
func (h RefundHandler) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	s, cooperative, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if s.PayIn {
		amount := x.NewCoin(s.Amount, s.Mint)
		if err := h.bank.MoveCoins(db, VaultAddress(s.Mint), s.OffererWallet, amount); err != nil {
			return nil, errors.Wrap(err, "refund")
		}
	} else {
		offerer, err := h.b.LoadOrCreateAccount(db, s.Offerer, s.Mint)
		if err != nil {
			return nil, errors.Wrap(err, "offerer")
		}
		if err := offerer.Credit(s.Amount); err != nil {
			return nil, errors.Wrap(err, "offerer")
		}
		if err := h.b.SaveAccount(db, offerer); err != nil {
			return nil, errors.Wrap(err, "save offerer")
		}
	}

	if !s.PayOut {
		claimer, err := h.b.LoadOrCreateAccount(db, s.Claimer, s.Mint)
		if err != nil {
			return nil, errors.Wrap(err, "claimer")
		}
		if cooperative {
			claimer.RecordCoopClose(s.Kind, s.Amount)
		} else {
			claimer.RecordFail(s.Kind, s.Amount)
		}
		if err := h.b.SaveAccount(db, claimer); err != nil {
			return nil, errors.Wrap(err, "save claimer")
		}
	}

	reserve := ReserveAddress(s.Hash)
	if !cooperative && s.SecurityDeposit > 0 {
		conf, err := LoadConfiguration(db)
		if err != nil {
			return nil, err
		}
		if err := h.bank.MoveCoins(db, reserve, s.Offerer, conf.native(s.SecurityDeposit)); err != nil {
			return nil, errors.Wrap(err, "pay security deposit")
		}
	}
	if _, err := cash.MoveAll(db, h.bank, reserve, s.Initializer()); err != nil {
		return nil, errors.Wrap(err, "close reserve")
	}

	if err := settle(ctx, db, h.b, s, StateRefunded, nil); err != nil {
		return nil, err
	}

	chainswap.GetLogger(ctx).Info("swap refunded",
		"hash", s.Hash, "kind", s.Kind, "cooperative", cooperative)

	return &chainswap.DeliverResult{
		Events: []chainswap.Event{RefundEvent{
			Hash:     s.Hash,
			Sequence: s.Sequence,
		}},
	}, nil
}

func (h RefundHandler) validate(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*Swap, bool, error) {
	var msg RefundMsg
	if err := chainswap.LoadMsg(tx, &msg); err != nil {
		return nil, false, errors.Wrap(err, "load msg")
	}
	s, err := h.b.LoadSwap(db, msg.Hash)
	if err != nil {
		return nil, false, err
	}
	if !h.auth.HasAddress(ctx, s.Offerer) {
		return nil, false, errors.Wrap(errors.ErrUnauthorized, "offerer signature required")
	}
	cooperative, err := h.refunds.AuthorizeRefund(ctx, s, msg.AuthExpiry, msg.Proof)
	if err != nil {
		return nil, false, err
	}
	return s, cooperative, nil
}

// settle replaces the swap with its settlement.
func settle(ctx chainswap.Context, db chainswap.KVStore, b Buckets, s *Swap, state SettlementState, witness []byte) error {
	if err := b.Swaps.Delete(db, s.Hash); err != nil {
		return errors.Wrap(err, "delete swap")
	}
	height, _ := chainswap.GetHeight(ctx)
	st := &Settlement{
		State:    state,
		Witness:  witness,
		Sequence: s.Sequence,
		Height:   height,
	}
	return errors.Wrap(b.Settlements.Put(db, s.Hash, st), "save settlement")
}
