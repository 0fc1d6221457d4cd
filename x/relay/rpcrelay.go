package relay

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/iov-one/chainswap/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// RPCRelay is a relay backend querying a btcd or bitcoind node over JSON-RPC.
// Transaction lookups require the node to maintain a transaction index.
//
// Every query is bounded by the caller context and the configured timeout.
// The client sends requests one at a time, so a node that stops answering
// makes later queries time out as well until it recovers.
type RPCRelay struct {
	client  *rpcclient.Client
	logger  log.Logger
	timeout time.Duration
}

// DefaultRPCTimeout is used when RPCConfig.Timeout is not set.
const DefaultRPCTimeout = 15 * time.Second

var _ Relay = (*RPCRelay)(nil)

// RPCConfig configures a connection to the settlement chain node.
type RPCConfig struct {
	Host string `yaml:"host"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	TLS  bool   `yaml:"tls"`
	// Timeout bounds a single query, DefaultRPCTimeout when zero.
	Timeout time.Duration `yaml:"timeout"`
}

// NewRPCRelay connects to the node in HTTP POST mode.
func NewRPCRelay(conf RPCConfig, logger log.Logger) (*RPCRelay, error) {
	client, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         conf.Host,
		User:         conf.User,
		Pass:         conf.Pass,
		HTTPPostMode: true,
		DisableTLS:   !conf.TLS,
	}, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "rpc client %s: %s", conf.Host, err)
	}
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = DefaultRPCTimeout
	}
	return &RPCRelay{client: client, logger: logger, timeout: timeout}, nil
}

func (r *RPCRelay) VerifyTransaction(ctx context.Context, txid [32]byte, confirmations uint32) error {
	hash := chainhash.Hash(txid)
	future := r.client.GetRawTransactionVerboseAsync(&hash)

	var res *btcjson.TxRawResult
	err := r.await(ctx, "getrawtransaction", func() (err error) {
		res, err = future.Receive()
		return err
	})
	if err != nil {
		r.logger.Debug("transaction lookup failed", "txid", hash.String(), "err", err)
		return errors.Wrapf(ErrRelayRejected, "transaction %s: %s", hash, err)
	}
	if res.Confirmations < uint64(confirmations) {
		return errors.Wrapf(ErrRelayRejected, "%d confirmations, want %d", res.Confirmations, confirmations)
	}
	return nil
}

func (r *RPCRelay) VerifyBlockheight(ctx context.Context, height uint32, op Operator) error {
	if err := op.Validate(); err != nil {
		return errors.Wrap(ErrRelayRejected, err.Error())
	}
	future := r.client.GetBlockCountAsync()

	var count int64
	err := r.await(ctx, "getblockcount", func() (err error) {
		count, err = future.Receive()
		return err
	})
	if err != nil {
		if ErrRelayRejected.Is(err) {
			return err
		}
		return errors.Wrapf(errors.ErrState, "block count: %s", err)
	}
	if count < 0 || !op.Compare(uint32(count), height) {
		return errors.Wrapf(ErrRelayRejected, "height %d %s %d does not hold", count, op, height)
	}
	return nil
}

// await waits for receive to return. An expired context or timeout is
// reported as ErrRelayRejected. The receiving goroutine is abandoned in
// that case and exits once the client gives up on the request.
func (r *RPCRelay) await(ctx context.Context, method string, receive func() error) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- receive() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return errors.Wrapf(ErrRelayRejected, "%s: %s", method, ctx.Err())
	}
}

// Close disconnects from the node.
func (r *RPCRelay) Close() {
	r.client.Shutdown()
}
