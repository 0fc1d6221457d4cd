package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/chainswap"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome   string
	flagConfig string
)

func main() {
	root := &cobra.Command{
		Use:           "swapd",
		Short:         "Cross chain atomic swap escrow engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".swapd")
	root.PersistentFlags().StringVar(&flagHome, "home", defaultHome, "directory to store files under")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "configuration file (default <home>/config.yaml)")

	root.AddCommand(
		initCmd(),
		startCmd(),
		versionCmd(),
		commitmentCmd(),
		stripWitnessCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (Config, error) {
	path := flagConfig
	if path == "" {
		path = filepath.Join(flagHome, "config.yaml")
	}
	return LoadConfig(path, flagHome)
}

func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout))
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt).With("module", "swapd"), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), chainswap.Version())
		},
	}
}
