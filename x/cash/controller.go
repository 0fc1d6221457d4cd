package cash

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x"
)

// Controller is the functionality needed by other extensions to move
// tokens between wallets.
type Controller interface {
	// MoveCoins moves the given amount from src to dest. It fails if the
	// source does not hold enough.
	MoveCoins(db chainswap.KVStore, src, dest chainswap.Address, amount x.Coin) error
	// IssueCoins creates new coins in the destination wallet.
	IssueCoins(db chainswap.KVStore, dest chainswap.Address, amount x.Coin) error
	// Balance returns the content of a wallet.
	Balance(db chainswap.ReadOnlyKVStore, addr chainswap.Address) (x.Coins, error)
}

// BaseController is a simple implementation of the Controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) MoveCoins(db chainswap.KVStore, src, dest chainswap.Address, amount x.Coin) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	sender, err := c.bucket.Balance(db, src)
	if err != nil {
		return errors.Wrap(err, "sender")
	}
	if !sender.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s has %v, needs %s", src, sender, amount)
	}
	sender, err = sender.Subtract(amount)
	if err != nil {
		return err
	}
	if err := c.bucket.Save(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}

	// Load the recipient after saving the sender so that moving coins
	// to self is a no-op.
	recipient, err := c.bucket.Balance(db, dest)
	if err != nil {
		return errors.Wrap(err, "recipient")
	}
	recipient, err = recipient.Add(amount)
	if err != nil {
		return err
	}
	return errors.Wrap(c.bucket.Save(db, dest, recipient), "save recipient")
}

func (c BaseController) IssueCoins(db chainswap.KVStore, dest chainswap.Address, amount x.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	recipient, err := c.bucket.Balance(db, dest)
	if err != nil {
		return err
	}
	recipient, err = recipient.Add(amount)
	if err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}

func (c BaseController) Balance(db chainswap.ReadOnlyKVStore, addr chainswap.Address) (x.Coins, error) {
	return c.bucket.Balance(db, addr)
}

// MoveAll transfers every coin held by src to dest. Nothing is moved from
// an empty wallet.
func MoveAll(db chainswap.KVStore, ctrl Controller, src, dest chainswap.Address) (x.Coins, error) {
	coins, err := ctrl.Balance(db, src)
	if err != nil {
		return nil, err
	}
	for _, c := range coins {
		if err := ctrl.MoveCoins(db, src, dest, *c); err != nil {
			return nil, errors.Wrapf(err, "move %s", c)
		}
	}
	return coins, nil
}
