package swap

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/orm"
	"github.com/iov-one/chainswap/x"
)

const (
	// MaxConfirmations is the greatest number of confirmations a swap can
	// require. The relay prunes block headers older than 250 blocks and
	// a safety buffer of 50 blocks is kept.
	MaxConfirmations = 250 - 50

	// BlockheightExpiryThreshold separates the two meanings of an expiry.
	// Values below are settlement chain block heights, values above are
	// Unix timestamps in seconds.
	// TODO: declare the expiry unit explicitly once clients no longer rely
	// on this threshold.
	BlockheightExpiryThreshold = 1000000000

	// HashSize is the size of the swap lock hash.
	HashSize = 32
)

// Swap is an active escrow. It is stored under its lock hash.
type Swap struct {
	Kind          Kind               `json:"kind"`
	Confirmations uint16             `json:"confirmations"`
	Nonce         uint64             `json:"nonce"`
	Hash          chainswap.HexBytes `json:"hash"`
	PayIn         bool               `json:"pay_in"`
	PayOut        bool               `json:"pay_out"`
	Amount        uint64             `json:"amount"`
	Expiry        uint64             `json:"expiry"`
	Sequence      uint64             `json:"sequence"`
	Offerer       chainswap.Address  `json:"offerer"`
	Claimer       chainswap.Address  `json:"claimer"`
	// OffererWallet is the token wallet funding the swap. Set iff PayIn.
	OffererWallet chainswap.Address `json:"offerer_wallet,omitempty"`
	// ClaimerWallet is the token wallet receiving the swap. Set iff PayOut.
	ClaimerWallet   chainswap.Address `json:"claimer_wallet,omitempty"`
	Mint            string            `json:"mint"`
	SecurityDeposit uint64            `json:"security_deposit"`
	ClaimerBounty   uint64            `json:"claimer_bounty"`
}

var _ orm.Model = (*Swap)(nil)

func (s *Swap) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Kind", s.Kind.Validate())
	if s.Confirmations > MaxConfirmations {
		errs = errors.AppendField(errs, "Confirmations", ErrTooManyConfirmations)
	}
	if s.Kind != KindChainNonced && s.Nonce != 0 {
		errs = errors.AppendField(errs, "Nonce", ErrInvalidSwapNonce)
	}
	if len(s.Hash) != HashSize {
		errs = errors.AppendField(errs, "Hash", errors.ErrInput)
	}
	if s.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "Offerer", s.Offerer.Validate())
	errs = errors.AppendField(errs, "Claimer", s.Claimer.Validate())
	if s.PayIn {
		errs = errors.AppendField(errs, "OffererWallet", s.OffererWallet.Validate())
	} else if len(s.OffererWallet) != 0 {
		errs = errors.AppendField(errs, "OffererWallet", errors.Wrap(errors.ErrInput, "pay in only"))
	}
	if s.PayOut {
		errs = errors.AppendField(errs, "ClaimerWallet", s.ClaimerWallet.Validate())
	} else if len(s.ClaimerWallet) != 0 {
		errs = errors.AppendField(errs, "ClaimerWallet", errors.Wrap(errors.ErrInput, "pay out only"))
	}
	if !x.IsCC(s.Mint) {
		errs = errors.AppendField(errs, "Mint", x.ErrCurrency)
	}
	return errs
}

// Reserved returns the native amount the swap reserve must hold on top of
// the storage deposit. Only one of the security deposit and the claimer
// bounty is ever paid out, so only the greater one is reserved.
func (s *Swap) Reserved() uint64 {
	if s.SecurityDeposit > s.ClaimerBounty {
		return s.SecurityDeposit
	}
	return s.ClaimerBounty
}

// Initializer returns the party that funded the swap reserve and receives
// whatever is left of it on settlement.
func (s *Swap) Initializer() chainswap.Address {
	if s.PayIn {
		return s.Offerer
	}
	return s.Claimer
}

// ExpiresAtHeight returns true if the expiry is a settlement chain block
// height rather than a timestamp.
func (s *Swap) ExpiresAtHeight() bool {
	return s.Expiry < BlockheightExpiryThreshold
}

// SettlementState is the terminal state of a swap.
type SettlementState int32

const (
	StateClaimed SettlementState = iota + 1
	StateRefunded
)

func (s SettlementState) String() string {
	switch s {
	case StateClaimed:
		return "claimed"
	case StateRefunded:
		return "refunded"
	}
	return "unknown"
}

// Settlement replaces a swap once it was claimed or refunded so that the
// lock hash cannot be reused.
type Settlement struct {
	State    SettlementState    `json:"state"`
	Witness  chainswap.HexBytes `json:"witness,omitempty"`
	Sequence uint64             `json:"sequence"`
	Height   int64              `json:"height"`
}

var _ orm.Model = (*Settlement)(nil)

func (s *Settlement) Validate() error {
	var errs error
	if s.State != StateClaimed && s.State != StateRefunded {
		errs = errors.AppendField(errs, "State", errors.ErrState)
	}
	if s.State == StateClaimed && len(s.Witness) != HashSize {
		errs = errors.AppendField(errs, "Witness", errors.ErrInput)
	}
	return errs
}

// UserAccount is the internal balance of a counterparty in a single mint
// together with its reputation. It is created on first deposit and never
// deleted.
type UserAccount struct {
	Owner   chainswap.Address `json:"owner"`
	Mint    string            `json:"mint"`
	Balance uint64            `json:"balance"`

	SuccessVolume   [kindCount]uint64 `json:"success_volume"`
	SuccessCount    [kindCount]uint64 `json:"success_count"`
	FailVolume      [kindCount]uint64 `json:"fail_volume"`
	FailCount       [kindCount]uint64 `json:"fail_count"`
	CoopCloseVolume [kindCount]uint64 `json:"coop_close_volume"`
	CoopCloseCount  [kindCount]uint64 `json:"coop_close_count"`
}

var _ orm.Model = (*UserAccount)(nil)

func (u *UserAccount) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", u.Owner.Validate())
	if !x.IsCC(u.Mint) {
		errs = errors.AppendField(errs, "Mint", x.ErrCurrency)
	}
	return errs
}

// Credit increases the balance.
func (u *UserAccount) Credit(amount uint64) error {
	sum, err := checkedAdd(u.Balance, amount)
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	u.Balance = sum
	return nil
}

// Debit decreases the balance.
func (u *UserAccount) Debit(amount uint64) error {
	if amount > u.Balance {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, needs %d", u.Balance, amount)
	}
	u.Balance -= amount
	return nil
}

// RecordSuccess accounts a claimed swap.
func (u *UserAccount) RecordSuccess(k Kind, amount uint64) {
	u.SuccessVolume[k] = saturatingAdd(u.SuccessVolume[k], amount)
	u.SuccessCount[k] = saturatingAdd(u.SuccessCount[k], 1)
}

// RecordFail accounts a swap refunded after timeout.
func (u *UserAccount) RecordFail(k Kind, amount uint64) {
	u.FailVolume[k] = saturatingAdd(u.FailVolume[k], amount)
	u.FailCount[k] = saturatingAdd(u.FailCount[k], 1)
}

// RecordCoopClose accounts a cooperatively refunded swap.
func (u *UserAccount) RecordCoopClose(k Kind, amount uint64) {
	u.CoopCloseVolume[k] = saturatingAdd(u.CoopCloseVolume[k], amount)
	u.CoopCloseCount[k] = saturatingAdd(u.CoopCloseCount[k], 1)
}

// DataAccount is a storage object used to deliver a claim secret by
// a party other than the one submitting the claim. Its payload capacity
// is fixed on creation.
type DataAccount struct {
	Owner   chainswap.Address  `json:"owner"`
	Payload chainswap.HexBytes `json:"payload"`
}

var _ orm.Model = (*DataAccount)(nil)

func (d *DataAccount) Validate() error {
	return errors.AppendField(nil, "Owner", d.Owner.Validate())
}

// Bytes returns the account content in its serialized layout, the owner
// followed by the payload.
func (d *DataAccount) Bytes() []byte {
	out := make([]byte, 0, len(d.Owner)+len(d.Payload))
	out = append(out, d.Owner...)
	return append(out, d.Payload...)
}

// Buckets groups all storage used by this extension.
type Buckets struct {
	Swaps       orm.ModelBucket
	Settlements orm.ModelBucket
	Accounts    orm.ModelBucket
	Data        orm.ModelBucket
}

// NewBuckets returns the buckets of this extension.
func NewBuckets() Buckets {
	return Buckets{
		Swaps:       orm.NewModelBucket("swap", &Swap{}, cdc),
		Settlements: orm.NewModelBucket("settlement", &Settlement{}, cdc),
		Accounts:    orm.NewModelBucket("account", &UserAccount{}, cdc),
		Data:        orm.NewModelBucket("data", &DataAccount{}, cdc),
	}
}

// LoadSwap returns the active swap locked by given hash. A settled swap
// results in ErrAlreadySettled.
func (b Buckets) LoadSwap(db chainswap.ReadOnlyKVStore, hash []byte) (*Swap, error) {
	var s Swap
	err := b.Swaps.One(db, hash, &s)
	if err == nil {
		return &s, nil
	}
	if !errors.ErrNotFound.Is(err) {
		return nil, err
	}
	if err := b.Settlements.Has(db, hash); err == nil {
		return nil, errors.Wrapf(ErrAlreadySettled, "swap %X", hash)
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "swap %X", hash)
}

// LoadSettlement returns the settlement of given swap.
func (b Buckets) LoadSettlement(db chainswap.ReadOnlyKVStore, hash []byte) (*Settlement, error) {
	var s Settlement
	if err := b.Settlements.One(db, hash, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadAccount returns the internal account of given owner.
func (b Buckets) LoadAccount(db chainswap.ReadOnlyKVStore, owner chainswap.Address, mint string) (*UserAccount, error) {
	var u UserAccount
	if err := b.Accounts.One(db, accountKey(owner, mint), &u); err != nil {
		return nil, errors.Wrapf(err, "account %s", owner)
	}
	return &u, nil
}

// LoadOrCreateAccount returns the internal account of given owner, or
// a new empty one if none exist yet.
func (b Buckets) LoadOrCreateAccount(db chainswap.ReadOnlyKVStore, owner chainswap.Address, mint string) (*UserAccount, error) {
	u, err := b.LoadAccount(db, owner, mint)
	if errors.ErrNotFound.Is(err) {
		return &UserAccount{Owner: owner, Mint: mint}, nil
	}
	return u, err
}

// SaveAccount stores the internal account.
func (b Buckets) SaveAccount(db chainswap.KVStore, u *UserAccount) error {
	return b.Accounts.Put(db, accountKey(u.Owner, u.Mint), u)
}

// LoadData returns the data account with given id.
func (b Buckets) LoadData(db chainswap.ReadOnlyKVStore, id []byte) (*DataAccount, error) {
	var d DataAccount
	if err := b.Data.One(db, id, &d); err != nil {
		return nil, errors.Wrapf(err, "data account %X", id)
	}
	return &d, nil
}

func accountKey(owner chainswap.Address, mint string) []byte {
	key := make([]byte, 0, len(owner)+len(mint))
	key = append(key, owner...)
	return append(key, mint...)
}

// VaultAddress returns the wallet holding the tokens of all swaps and
// internal balances of given mint.
func VaultAddress(mint string) chainswap.Address {
	return chainswap.NewCondition("swap", "vault", []byte(mint)).Address()
}

// ReserveAddress returns the wallet holding the native reserve of a swap.
func ReserveAddress(hash []byte) chainswap.Address {
	return chainswap.NewCondition("swap", "reserve", hash).Address()
}

// DataAddress returns the wallet holding the native deposit of a data
// account.
func DataAddress(id []byte) chainswap.Address {
	return chainswap.NewCondition("swap", "data", id).Address()
}
