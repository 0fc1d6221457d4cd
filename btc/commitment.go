package btc

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"
	"github.com/iov-one/chainswap/errors"
)

// OutputCommitment returns the hash a chain swap is locked with. It commits
// to the nonce and to the value and script of the output that pays the
// swap.
//
//	sha256(nonce_le64 || value_le64 || script)
func OutputCommitment(nonce, value uint64, script []byte) [32]byte {
	buf := make([]byte, 16, 16+len(script))
	binary.LittleEndian.PutUint64(buf[0:8], nonce)
	binary.LittleEndian.PutUint64(buf[8:16], value)
	buf = append(buf, script...)
	return sha256.Sum256(buf)
}

// StripWitness returns the legacy serialization of given transaction. Segwit
// transactions lose their marker, flag and witness data. The transaction
// hash of the result is the transaction id.
func StripWitness(raw []byte) ([]byte, error) {
	var tx wire.MsgTx
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode transaction: %s", err)
	}
	var buf bytes.Buffer
	if err := tx.SerializeNoWitness(&buf); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot encode transaction: %s", err)
	}
	return buf.Bytes(), nil
}

// PayToAddrScript returns the output script paying to given address.
func PayToAddrScript(addr string, net *chaincfg.Params) ([]byte, error) {
	a, err := btcutil.DecodeAddress(addr, net)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "address %q: %s", addr, err)
	}
	if !a.IsForNet(net) {
		return nil, errors.Wrapf(errors.ErrInput, "address %q is not for %s", addr, net.Name)
	}
	script, err := txscript.PayToAddrScript(a)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "address %q: %s", addr, err)
	}
	return script, nil
}

// Network returns the chain parameters registered under given name.
func Network(name string) (*chaincfg.Params, error) {
	switch name {
	case "", "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "simnet":
		return &chaincfg.SimNetParams, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown network %q", name)
	}
}
