package chainswap

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/chainswap/errors"
)

func unmarshalHex(dst *[]byte, src []byte) (err error) {
	var s string
	err = json.Unmarshal(src, &s)
	if err != nil {
		return errors.Wrap(err, "parse string")
	}
	// and interpret that string as hex
	*dst, err = hex.DecodeString(s)
	return err
}

func marshalHex(bytes []byte) ([]byte, error) {
	s := strings.ToUpper(hex.EncodeToString(bytes))
	return json.Marshal(s)
}

// HexBytes is a byte slice that renders as upper case hex in JSON. Hashes,
// secrets and raw transactions use it in messages and events.
type HexBytes []byte

func (h HexBytes) MarshalJSON() ([]byte, error) {
	return marshalHex(h)
}

func (h *HexBytes) UnmarshalJSON(raw []byte) error {
	var b []byte
	if err := unmarshalHex(&b, raw); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*h = b
	return nil
}

func (h HexBytes) String() string {
	return strings.ToUpper(hex.EncodeToString(h))
}
