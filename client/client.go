/*
Package client is a Go client of the swapd HTTP API.
*/
package client

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/app"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x"
	"github.com/iov-one/chainswap/x/swap"
)

// Client talks to a single swapd node.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient returns a client of the node listening at given base URL,
// ie. "http://localhost:8480".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

// Status returns the chain id and the current height of the node.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var s Status
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SubmitTx delivers the transaction and returns once it was committed or
// rejected.
func (c *Client) SubmitTx(ctx context.Context, tx *app.Tx) (*CommitResult, error) {
	raw, err := app.EncodeJSONTx(tx)
	if err != nil {
		return nil, err
	}
	var res CommitResult
	if err := c.do(ctx, http.MethodPost, "/v1/tx", raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CheckTx runs the transaction checks without applying it.
func (c *Client) CheckTx(ctx context.Context, tx *app.Tx) (*CheckResult, error) {
	raw, err := app.EncodeJSONTx(tx)
	if err != nil {
		return nil, err
	}
	var res CheckResult
	if err := c.do(ctx, http.MethodPost, "/v1/tx/check", raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Swap returns the state of the swap locked with given hash.
func (c *Client) Swap(ctx context.Context, hash []byte) (*SwapState, error) {
	var s SwapState
	if err := c.do(ctx, http.MethodGet, "/v1/swaps/"+hex.EncodeToString(hash), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Account returns the internal ledger account of the owner.
func (c *Client) Account(ctx context.Context, owner chainswap.Address, mint string) (*swap.UserAccount, error) {
	var acc swap.UserAccount
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/accounts/%s/%s", owner, mint), nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// Wallet returns the coins held by given address.
func (c *Client) Wallet(ctx context.Context, addr chainswap.Address) (x.Coins, error) {
	var w struct {
		Coins x.Coins `json:"coins"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/wallets/"+addr.String(), nil, &w); err != nil {
		return nil, err
	}
	return w.Coins, nil
}

// Sequence returns the next sequence given signer must sign with.
func (c *Client) Sequence(ctx context.Context, signer chainswap.Address) (int64, error) {
	var u struct {
		Sequence int64 `json:"sequence"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/sequences/"+signer.String(), nil, &u); err != nil {
		return 0, err
	}
	return u.Sequence, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, dest interface{}) error {
	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "request: %s", err)
	}
	req = req.WithContext(ctx)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrNetwork, "%s %s: %s", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(errors.ErrNetwork, "read response: %s", err)
	}
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrNetwork, "decode response: %s", err)
	}
	return nil
}

// decodeError rebuilds the error returned by the node. Errors with a code
// registered in this process can be matched with Is.
func decodeError(status int, raw []byte) error {
	var e struct {
		Code uint32 `json:"code"`
		Log  string `json:"log"`
	}
	if err := json.Unmarshal(raw, &e); err != nil || e.Code == 0 {
		return errors.Wrapf(errors.ErrNetwork, "status %d: %s", status, raw)
	}
	if kind, ok := errors.Lookup(e.Code); ok {
		return errors.Wrap(kind, e.Log)
	}
	return errors.Wrapf(errors.ErrNetwork, "code %d: %s", e.Code, e.Log)
}
