package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/iov-one/chainswap/btc"
	"github.com/iov-one/chainswap/errors"
	"github.com/spf13/cobra"
)

func commitmentCmd() *cobra.Command {
	var (
		nonce   uint64
		value   uint64
		address string
		script  string
		network string
	)
	cmd := &cobra.Command{
		Use:   "commitment",
		Short: "Compute the lock hash of a chain swap paying an output",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := outputScript(address, script, network)
			if err != nil {
				return err
			}
			hash := btc.OutputCommitment(nonce, value, out)
			fmt.Fprintln(cmd.OutOrStdout(), strings.ToUpper(hex.EncodeToString(hash[:])))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&nonce, "nonce", 0, "transaction nonce, zero for plain chain swaps")
	cmd.Flags().Uint64Var(&value, "value", 0, "output value in the smallest unit")
	cmd.Flags().StringVar(&address, "address", "", "address the output pays to")
	cmd.Flags().StringVar(&script, "script", "", "hex encoded output script, instead of an address")
	cmd.Flags().StringVar(&network, "network", "mainnet", "settlement chain network")
	return cmd
}

func outputScript(address, script, network string) ([]byte, error) {
	switch {
	case address != "" && script != "":
		return nil, errors.Wrap(errors.ErrInput, "address and script are exclusive")
	case script != "":
		raw, err := hex.DecodeString(script)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "script is not hex")
		}
		return raw, nil
	case address != "":
		params, err := btc.Network(network)
		if err != nil {
			return nil, err
		}
		return btc.PayToAddrScript(address, params)
	default:
		return nil, errors.Wrap(errors.ErrEmpty, "address or script")
	}
}

func stripWitnessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip-witness [hex tx]",
		Short: "Print the legacy serialization of a transaction",
		Long:  "Print the legacy serialization of a transaction. The transaction is read from stdin if not given as an argument.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && err != io.EOF {
					return errors.Wrapf(errors.ErrInput, "read stdin: %s", err)
				}
				input = line
			}
			stripped, err := stripWitnessHex(input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stripped)
			return nil
		},
	}
}

func stripWitnessHex(input string) (string, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, "transaction is not hex")
	}
	stripped, err := btc.StripWitness(raw)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(stripped), nil
}
