package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/app"
	"github.com/tendermint/tendermint/libs/log"
)

// Engine applies transactions and provides read access to the state.
// It is implemented by app.Executor.
type Engine interface {
	ChainID() string
	Height() int64
	Check(ctx context.Context, tx chainswap.Tx) (*chainswap.CheckResult, error)
	Deliver(ctx context.Context, tx chainswap.Tx) (*app.Committed, error)
	View(fn func(db chainswap.ReadOnlyKVStore) error) error
}

// TxDecoder decodes a transaction submitted in a request body.
type TxDecoder func(raw []byte) (chainswap.Tx, error)

// Server is the HTTP frontend of an Engine.
type Server struct {
	engine  Engine
	decode  TxDecoder
	logger  log.Logger
	metrics *metrics
	debug   bool
	maxBody int64
}

// Option configures a Server.
type Option func(*Server)

// WithDebug includes full error details in responses.
func WithDebug(debug bool) Option {
	return func(s *Server) { s.debug = debug }
}

// WithMaxBodySize limits the size of a submitted transaction.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// New returns a server using given engine.
func New(engine Engine, decode TxDecoder, logger log.Logger, opts ...Option) *Server {
	s := &Server{
		engine:  engine,
		decode:  decode,
		logger:  logger,
		metrics: newMetrics(),
		maxBody: 1 << 20,
	}
	for _, fn := range opts {
		fn(s)
	}
	return s
}

// Handler returns the HTTP handler serving all endpoints.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(s.logMiddleware)

	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())
	r.Route("/v1", func(r chi.Router) {
		r.Post("/tx", s.deliverTx)
		r.Post("/tx/check", s.checkTx)
		r.Get("/swaps/{hash}", s.getSwap)
		r.Get("/accounts/{owner}/{mint}", s.getAccount)
		r.Get("/wallets/{addr}", s.getWallet)
		r.Get("/sequences/{addr}", s.getSequence)
	})
	return r
}

// ListenAndServe serves until the context is cancelled, then shuts the
// server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
