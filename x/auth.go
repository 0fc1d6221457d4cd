package x

import (
	"github.com/iov-one/chainswap"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetSigners reveals all addresses that authorized the current
	// transaction.
	GetSigners(chainswap.Context) []chainswap.Address
	// HasAddress checks if any signer matches this address.
	HasAddress(chainswap.Context, chainswap.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetSigners combines all signers from all Authenticators, removing
// duplicates and keeping the order of the first occurrence.
func (m MultiAuth) GetSigners(ctx chainswap.Context) []chainswap.Address {
	var res []chainswap.Address
	for _, impl := range m.impls {
		for _, s := range impl.GetSigners(ctx) {
			if !containsAddress(res, s) {
				res = append(res, s)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx chainswap.Context, addr chainswap.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer if any, otherwise nil
func MainSigner(ctx chainswap.Context, auth Authenticator) chainswap.Address {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx chainswap.Context, auth Authenticator, required ...chainswap.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n elements in requested are
// also in context.
func HasNAddresses(ctx chainswap.Context, auth Authenticator, required []chainswap.Address, n int) bool {
	if n <= 0 {
		return true
	}
	for _, r := range required {
		if auth.HasAddress(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}

func containsAddress(list []chainswap.Address, a chainswap.Address) bool {
	for _, x := range list {
		if x.Equals(a) {
			return true
		}
	}
	return false
}
