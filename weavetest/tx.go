package weavetest

import "github.com/iov-one/chainswap"

// Tx is a single message transaction. It can stand in for a signed
// transaction because it exposes the sign bytes; signatures are carried by
// the wrapping type of the extension under test.
type Tx struct {
	Msg chainswap.Msg
	// Err if set is returned by GetMsg and GetSignBytes.
	Err error
	// Payload is returned as the sign bytes. When empty, the message path
	// is used so that transactions for different routes never share a
	// signature.
	Payload []byte
}

var _ chainswap.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (chainswap.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) GetSignBytes() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	if len(tx.Payload) != 0 {
		return tx.Payload, nil
	}
	return []byte(chainswap.GetPath(tx)), nil
}

// Msg is a routable message with a fixed path and validation result.
type Msg struct {
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ chainswap.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
