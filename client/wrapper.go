package client

import (
	"context"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/app"
	"github.com/iov-one/chainswap/errors"
	"golang.org/x/crypto/ed25519"
)

// SignTx signs the transaction with every key, using the chain id and the
// current sequence of each signer as reported by the node.
func (c *Client) SignTx(ctx context.Context, tx *app.Tx, keys ...ed25519.PrivateKey) error {
	status, err := c.Status(ctx)
	if err != nil {
		return errors.Wrap(err, "status")
	}
	for _, key := range keys {
		signer := chainswap.Address(key.Public().(ed25519.PublicKey))
		seq, err := c.Sequence(ctx, signer)
		if err != nil {
			return errors.Wrapf(err, "sequence of %s", signer)
		}
		if err := tx.Sign(key, status.ChainID, seq); err != nil {
			return err
		}
	}
	return nil
}

// CommitMsg wraps the message in a transaction signed by all keys and
// submits it.
func (c *Client) CommitMsg(ctx context.Context, msg chainswap.Msg, keys ...ed25519.PrivateKey) (*CommitResult, error) {
	tx := app.NewTx(msg)
	if err := c.SignTx(ctx, tx, keys...); err != nil {
		return nil, err
	}
	return c.SubmitTx(ctx, tx)
}
