package app

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/x/cash"
	"github.com/iov-one/chainswap/x/sigs"
	"github.com/iov-one/chainswap/x/swap"
	amino "github.com/tendermint/go-amino"
)

var cdc = MakeCodec()

// MakeCodec returns a codec that knows every message the engine handles.
func MakeCodec() *amino.Codec {
	c := amino.NewCodec()
	c.RegisterInterface((*chainswap.Msg)(nil), nil)
	cash.RegisterAmino(c)
	sigs.RegisterAmino(c)
	swap.RegisterAmino(c)
	return c
}

// TxDecoder decodes raw transaction bytes.
type TxDecoder func(raw []byte) (chainswap.Tx, error)

// DecodeTx decodes the binary encoding of a transaction.
func DecodeTx(raw []byte) (chainswap.Tx, error) {
	var tx Tx
	if err := cdc.UnmarshalBinaryBare(raw, &tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &tx, nil
}

// DecodeJSONTx decodes the JSON encoding of a transaction.
func DecodeJSONTx(raw []byte) (chainswap.Tx, error) {
	var tx Tx
	if err := cdc.UnmarshalJSON(raw, &tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &tx, nil
}

// EncodeTx returns the binary encoding of a transaction.
func EncodeTx(tx *Tx) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// EncodeJSONTx returns the JSON encoding of a transaction.
func EncodeJSONTx(tx *Tx) ([]byte, error) {
	bz, err := cdc.MarshalJSON(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

var (
	_ TxDecoder = DecodeTx
	_ TxDecoder = DecodeJSONTx
)
