package app

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x"
	"github.com/iov-one/chainswap/x/cash"
	"github.com/iov-one/chainswap/x/relay"
	"github.com/iov-one/chainswap/x/sigs"
	"github.com/iov-one/chainswap/x/sigverify"
	"github.com/iov-one/chainswap/x/swap"
)

// Initializers returns the initializer of every extension that reads the
// genesis file.
func Initializers() chainswap.Initializer {
	return ChainInitializers(
		cash.Initializer{},
		relay.Initializer{},
		sigverify.Initializer{},
		swap.Initializer{},
	)
}

// Authenticator returns the authentication used by all extensions.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Routes registers the handlers of all extensions.
func Routes(r chainswap.Registry, auth x.Authenticator, claims *swap.ClaimVerifier, refunds *swap.RefundAuthorizer) {
	bank := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, auth, bank)
	sigs.RegisterRoutes(r, auth)
	swap.RegisterRoutes(r, auth, bank, claims, refunds)
}

// Stack builds the handler of the engine. Proof checkers are configured
// from the relay and signature verification configuration stored at
// genesis, backed by given relay.
func Stack(db chainswap.ReadOnlyKVStore, backend relay.Relay) (chainswap.Handler, error) {
	relayConf, err := relay.LoadConfiguration(db)
	if err != nil {
		return nil, errors.Wrap(err, "relay")
	}
	sigConf, err := sigverify.LoadConfiguration(db)
	if err != nil {
		return nil, errors.Wrap(err, "sigverify")
	}
	rc := relay.NewChecker(relayConf.ProgramID, backend)
	sc := sigverify.NewChecker(sigConf.ProgramID)

	r := NewRouter()
	Routes(r, Authenticator(), swap.NewClaimVerifier(rc), swap.NewRefundAuthorizer(rc, sc))

	return ChainDecorators(
		NewLogging(),
		NewRecovery(),
		sigs.NewDecorator(),
	).WithHandler(r), nil
}
