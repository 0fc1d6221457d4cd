package btc

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputCommitment(t *testing.T) {
	script := []byte{0x51}
	want := sha256.Sum256([]byte{
		7, 0, 0, 0, 0, 0, 0, 0,
		0x10, 0x27, 0, 0, 0, 0, 0, 0,
		0x51,
	})
	assert.Equal(t, want, OutputCommitment(7, 10000, script))
	assert.NotEqual(t, want, OutputCommitment(8, 10000, script))
}

func TestPayToAddrScript(t *testing.T) {
	// Genesis coinbase address.
	script, err := PayToAddrScript("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", &chaincfg.MainNetParams)
	require.NoError(t, err)
	assert.Equal(t, "76a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac", hex.EncodeToString(script))

	_, err = PayToAddrScript("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", &chaincfg.TestNet3Params)
	assert.Error(t, err)

	_, err = PayToAddrScript("not an address", &chaincfg.MainNetParams)
	assert.Error(t, err)
}

func TestNetwork(t *testing.T) {
	p, err := Network("regtest")
	require.NoError(t, err)
	assert.Equal(t, chaincfg.RegressionNetParams.Name, p.Name)

	_, err = Network("moon")
	assert.Error(t, err)
}
