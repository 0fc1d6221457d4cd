package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iov-one/chainswap/app"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/eventsink"
	"github.com/iov-one/chainswap/server"
	"github.com/iov-one/chainswap/store/bolt"
	"github.com/iov-one/chainswap/x/relay"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

const dbFile = "chainswap.db"

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <genesis.json>",
		Short: "Initialize the state from a genesis file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			gen, err := app.LoadGenesis(args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
				return errors.Wrapf(errors.ErrInput, "data dir: %s", err)
			}
			db, err := bolt.Open(filepath.Join(cfg.DataDir, dbFile))
			if err != nil {
				return err
			}
			defer db.Close()
			if err := app.InitChain(db, gen, app.Initializers()); err != nil {
				return err
			}
			logger.Info("genesis loaded", "chain_id", gen.ChainID, "data_dir", cfg.DataDir)
			return nil
		},
	}
}

func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run the engine and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, logger)
		},
	}
}

func run(ctx context.Context, cfg Config, logger log.Logger) error {
	db, err := bolt.Open(filepath.Join(cfg.DataDir, dbFile))
	if err != nil {
		return err
	}
	defer db.Close()

	backend, closeRelay, err := newRelay(cfg, logger)
	if err != nil {
		return err
	}
	defer closeRelay()

	handler, err := app.Stack(db, backend)
	if err != nil {
		return errors.Wrap(err, "build stack")
	}

	sink, closeSink, err := newSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	exec, err := app.NewExecutor(db, handler,
		app.WithLogger(logger.With("module", "executor")),
		app.WithSink(sink))
	if err != nil {
		return err
	}
	logger.Info("engine ready", "chain_id", exec.ChainID(), "height", exec.Height())

	srv := server.New(exec, app.DecodeJSONTx, logger.With("module", "http"), server.WithDebug(cfg.Debug))
	return srv.ListenAndServe(ctx, cfg.HTTPAddr)
}

func newRelay(cfg Config, logger log.Logger) (relay.Relay, func(), error) {
	switch cfg.Relay.Backend {
	case "rpc":
		r, err := relay.NewRPCRelay(cfg.Relay.RPC, logger.With("module", "relay"))
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	default:
		logger.Info("using in memory relay", "height", cfg.Relay.Height)
		return relay.NewMemRelay(cfg.Relay.Height), func() {}, nil
	}
}

func newSink(ctx context.Context, cfg Config) (eventsink.Sink, func(), error) {
	var (
		sinks   eventsink.Multi
		closers []func()
	)
	closeAll := func() {
		for _, fn := range closers {
			fn()
		}
	}
	if len(cfg.Kafka.Brokers) > 0 {
		k, err := eventsink.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, k)
		closers = append(closers, func() { _ = k.Close() })
	}
	if cfg.Postgres.DSN != "" {
		p, err := eventsink.NewPostgres(ctx, cfg.Postgres.DSN)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, p)
		closers = append(closers, p.Close)
	}
	return sinks, closeAll, nil
}
