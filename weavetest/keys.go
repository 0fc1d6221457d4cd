package weavetest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/chainswap"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a freshly generated ed25519 private key.
func NewKey() ed25519.PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return priv
}

// KeyAddress returns the address of the signer holding given key.
func KeyAddress(key ed25519.PrivateKey) chainswap.Address {
	pub := key.Public().(ed25519.PublicKey)
	return chainswap.Address(append([]byte(nil), pub...))
}

// NewAddress returns the address of a newly generated key.
func NewAddress() chainswap.Address {
	return KeyAddress(NewKey())
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation.
func ParseAddress(t testing.TB, encodedAddress string) chainswap.Address {
	t.Helper()

	addr, err := chainswap.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
