package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/app"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/server"
	"github.com/iov-one/chainswap/store"
	"github.com/iov-one/chainswap/weavetest"
	"github.com/iov-one/chainswap/x"
	"github.com/iov-one/chainswap/x/cash"
	"github.com/iov-one/chainswap/x/relay"
	"github.com/iov-one/chainswap/x/swap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

const testChainID = "client-chain-1"

func mustJSON(t testing.TB, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func newTestNode(t testing.TB, funded ...chainswap.Address) *httptest.Server {
	t.Helper()
	var accounts []cash.GenesisAccount
	for _, a := range funded {
		accounts = append(accounts, cash.GenesisAccount{
			Address: a,
			Coins:   []x.Coin{x.NewCoin(1000, "USDC"), x.NewCoin(100, "SOL")},
		})
	}
	gen := app.Genesis{
		ChainID: testChainID,
		AppOptions: chainswap.Options{
			"cash":      mustJSON(t, accounts),
			"relay":     mustJSON(t, map[string]interface{}{"program_id": weavetest.NewAddress()}),
			"sigverify": mustJSON(t, map[string]interface{}{"program_id": weavetest.NewAddress()}),
			"swap": mustJSON(t, swap.Configuration{
				MaxConfirmations:   100,
				NativeTicker:       "SOL",
				StorageDeposit:     5,
				DataAccountDeposit: 3,
				MaxDataSize:        1024,
			}),
		},
	}
	db := store.MemStore()
	require.NoError(t, app.InitChain(db, gen, app.Initializers()))
	h, err := app.Stack(db, relay.NewMemRelay(800000))
	require.NoError(t, err)
	now := time.Unix(1700000000, 0)
	exec, err := app.NewExecutor(db, h, app.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	srv := httptest.NewServer(server.New(exec, app.DecodeJSONTx, log.NewNopLogger()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestClientDeposit(t *testing.T) {
	key := weavetest.NewKey()
	owner := weavetest.KeyAddress(key)
	node := newTestNode(t, owner)
	c := NewClient(node.URL + "/")
	ctx := context.Background()

	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, testChainID, status.ChainID)
	assert.Equal(t, int64(0), status.Height)

	seq, err := c.Sequence(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)

	msg := &swap.DepositMsg{Owner: owner, Amount: x.NewCoin(250, "USDC")}
	check := app.NewTx(msg)
	require.NoError(t, c.SignTx(ctx, check, key))
	_, err = c.CheckTx(ctx, check)
	require.NoError(t, err)

	res, err := c.CommitMsg(ctx, msg, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Height)

	seq, err = c.Sequence(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	acc, err := c.Account(ctx, owner, "USDC")
	require.NoError(t, err)
	assert.Equal(t, uint64(250), acc.Balance)

	coins, err := c.Wallet(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, uint64(750), coins.Amount("USDC"))

	// A replayed transaction reuses a consumed sequence.
	_, err = c.SubmitTx(ctx, check)
	require.Error(t, err)
	assert.False(t, errors.ErrNetwork.Is(err))
}

func TestClientRemoteErrors(t *testing.T) {
	node := newTestNode(t)
	c := NewClient(node.URL)
	ctx := context.Background()

	_, err := c.Swap(ctx, make([]byte, swap.HashSize))
	require.Error(t, err)
	assert.True(t, errors.ErrNotFound.Is(err), err.Error())

	_, err = c.Account(ctx, weavetest.NewAddress(), "USDC")
	assert.True(t, errors.ErrNotFound.Is(err), err.Error())

	_, err = c.SubmitTx(ctx, app.NewTx(&swap.DepositMsg{Owner: weavetest.NewAddress(), Amount: x.NewCoin(1, "USDC")}))
	assert.True(t, errors.ErrUnauthorized.Is(err), err.Error())
}

func TestDecodeError(t *testing.T) {
	cases := map[string]struct {
		status  int
		body    string
		wantErr *errors.Error
	}{
		"registered code": {
			status:  http.StatusConflict,
			body:    `{"code": 6, "log": "swap exists"}`,
			wantErr: errors.ErrDuplicate,
		},
		"unknown code": {
			status:  http.StatusBadRequest,
			body:    `{"code": 987654, "log": "custom"}`,
			wantErr: errors.ErrNetwork,
		},
		"internal code": {
			status:  http.StatusInternalServerError,
			body:    `{"code": 1, "log": "internal error"}`,
			wantErr: errors.ErrNetwork,
		},
		"not json": {
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantErr: errors.ErrNetwork,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).Status(context.Background())
			require.Error(t, err)
			assert.True(t, tc.wantErr.Is(err), err.Error())
		})
	}
}

func TestUnreachableNode(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, WithHTTPClient(&http.Client{Timeout: time.Second}))
	_, err := c.Status(context.Background())
	require.Error(t, err)
	assert.True(t, errors.ErrNetwork.Is(err))
}
