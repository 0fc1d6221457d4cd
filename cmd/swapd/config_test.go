package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/chainswap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), "/tmp/swapd")
	require.NoError(t, err)
	assert.Equal(t, ":8480", cfg.HTTPAddr)
	assert.Equal(t, "/tmp/swapd", cfg.DataDir)
	assert.Equal(t, "mem", cfg.Relay.Backend)
	assert.Equal(t, "chainswap.events", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
http_addr: ":9000"
log_level: debug
relay:
  backend: rpc
  rpc:
    host: localhost:18332
    user: alice
kafka:
  brokers: ["k1:9092"]
  topic: swaps
postgres:
  dsn: postgres://localhost/swaps
`
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SWAPD_RELAY_RPC_PASS", "secret")
	t.Setenv("SWAPD_KAFKA_BROKERS", "k2:9092, k3:9092")
	t.Setenv("SWAPD_DEBUG", "true")

	cfg, err := LoadConfig(path, "/data")
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "rpc", cfg.Relay.Backend)
	assert.Equal(t, "localhost:18332", cfg.Relay.RPC.Host)
	assert.Equal(t, "alice", cfg.Relay.RPC.User)
	assert.Equal(t, "secret", cfg.Relay.RPC.Pass)
	assert.Equal(t, []string{"k2:9092", "k3:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "swaps", cfg.Kafka.Topic)
	assert.Equal(t, "postgres://localhost/swaps", cfg.Postgres.DSN)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, ioutil.WriteFile(broken, []byte("relay: [\n"), 0o600))
	_, err := LoadConfig(broken, dir)
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)

	noHost := filepath.Join(dir, "nohost.yaml")
	require.NoError(t, ioutil.WriteFile(noHost, []byte("relay:\n  backend: rpc\n"), 0o600))
	_, err = LoadConfig(noHost, dir)
	assert.True(t, errors.ErrEmpty.Is(err), "%+v", err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, ioutil.WriteFile(unknown, []byte("relay:\n  backend: electrum\n"), 0o600))
	_, err = LoadConfig(unknown, dir)
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)
}

func TestMain(m *testing.M) {
	for _, name := range []string{
		"SWAPD_HTTP_ADDR", "SWAPD_DATA_DIR", "SWAPD_LOG_LEVEL", "SWAPD_DEBUG",
		"SWAPD_RELAY_BACKEND", "SWAPD_RELAY_RPC_HOST", "SWAPD_RELAY_RPC_USER",
		"SWAPD_RELAY_RPC_PASS", "SWAPD_KAFKA_BROKERS", "SWAPD_KAFKA_TOPIC",
		"SWAPD_POSTGRES_DSN",
	} {
		os.Unsetenv(name)
	}
	os.Exit(m.Run())
}
