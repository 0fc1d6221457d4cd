package app

import (
	"fmt"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
)

// Router dispatches a transaction to the handler registered for the path
// of its message.
type Router struct {
	routes map[string]chainswap.Handler
}

var (
	_ chainswap.Registry = (*Router)(nil)
	_ chainswap.Handler  = (*Router)(nil)
)

// NewRouter returns a router without any routes.
func NewRouter() *Router {
	return &Router{routes: make(map[string]chainswap.Handler)}
}

// Handle registers a handler for the path of given message. It panics on
// an invalid path or when the path is already taken.
func (r *Router) Handle(m chainswap.Msg, h chainswap.Handler) {
	path := m.Path()
	if !chainswap.ValidPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for given path. An unknown path
// results in a handler that always fails with ErrNotFound.
func (r *Router) Handler(path string) chainswap.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

func (r *Router) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Deliver(ctx, db, tx)
}

type notFoundHandler string

func (path notFoundHandler) Check(chainswap.Context, chainswap.KVStore, chainswap.Tx) (*chainswap.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(chainswap.Context, chainswap.KVStore, chainswap.Tx) (*chainswap.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
