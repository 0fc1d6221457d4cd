package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/chainswap"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced signers.
// You can use either Signer or Signers (or both) attributes to reference
// signers. This is for the convinience and each time all signers
// (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer chainswap.Address

	// Signers represents an authentication of multiple signers.
	Signers []chainswap.Address
}

func (a *Auth) GetSigners(chainswap.Context) []chainswap.Address {
	if a.Signer != nil {
		return append([]chainswap.Address{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx chainswap.Context, addr chainswap.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convinience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetSigners(ctx chainswap.Context, signers ...chainswap.Address) chainswap.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetSigners(ctx chainswap.Context) []chainswap.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	signers, ok := val.([]chainswap.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []chainswap.Address got %T", ctx.Value(a.Key)))
	}
	return signers
}

func (a *CtxAuth) HasAddress(ctx chainswap.Context, addr chainswap.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
