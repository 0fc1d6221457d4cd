package relay

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/chainswap/errors"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// stubNode answers getblockcount with a fixed height. When hang is set it
// never answers until the test releases it.
func stubNode(t *testing.T, height int64, hang bool) *RPCConfig {
	t.Helper()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hang {
			select {
			case <-release:
			case <-r.Context().Done():
			}
			return
		}
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Method != "getblockcount" {
			http.Error(w, "unsupported method", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"result": height,
			"error":  nil,
			"id":     req.ID,
		})
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})
	return &RPCConfig{Host: strings.TrimPrefix(srv.URL, "http://")}
}

func newTestRPCRelay(t *testing.T, conf *RPCConfig) *RPCRelay {
	t.Helper()
	r, err := NewRPCRelay(*conf, log.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func TestRPCRelayBlockheight(t *testing.T) {
	r := newTestRPCRelay(t, stubNode(t, 120, false))

	require.NoError(t, r.VerifyBlockheight(context.Background(), 100, OpGreaterEqual))
	err := r.VerifyBlockheight(context.Background(), 200, OpGreaterEqual)
	require.True(t, ErrRelayRejected.Is(err), "%+v", err)
}

func TestRPCRelayUnresponsiveNode(t *testing.T) {
	conf := stubNode(t, 0, true)
	conf.Timeout = 50 * time.Millisecond
	r := newTestRPCRelay(t, conf)

	start := time.Now()
	err := r.VerifyBlockheight(context.Background(), 100, OpGreaterEqual)
	require.True(t, ErrRelayRejected.Is(err), "%+v", err)

	err = r.VerifyTransaction(context.Background(), sha256.Sum256([]byte("tx")), 1)
	require.True(t, ErrRelayRejected.Is(err), "%+v", err)
	require.True(t, time.Since(start) < 5*time.Second, "queries must give up after the timeout")
}

func TestRPCRelayCancelledContext(t *testing.T) {
	conf := stubNode(t, 0, true)
	conf.Timeout = time.Hour
	r := newTestRPCRelay(t, conf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.VerifyBlockheight(ctx, 100, OpGreaterEqual)
	require.True(t, ErrRelayRejected.Is(err), "%+v", err)
	require.False(t, errors.ErrState.Is(err))
}

func TestRPCRelayDefaultTimeout(t *testing.T) {
	r := newTestRPCRelay(t, &RPCConfig{Host: "127.0.0.1:1"})
	require.Equal(t, DefaultRPCTimeout, r.timeout)
}
