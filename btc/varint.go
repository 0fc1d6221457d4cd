package btc

import (
	"encoding/binary"

	"github.com/iov-one/chainswap/errors"
)

// reader walks a raw transaction. Each read advances the offset and fails
// if not enough bytes are left.
type reader struct {
	data []byte
	off  int
}

func (r *reader) need(n uint64) error {
	if n > uint64(len(r.data)-r.off) {
		return errors.Wrapf(errors.ErrInput, "truncated at offset %d: want %d bytes", r.off, n)
	}
	return nil
}

func (r *reader) skip(n uint64) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.off += int(n)
	return nil
}

func (r *reader) bytes(n uint64) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.off : r.off+int(n)]
	r.off += int(n)
	return b, nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) u64() (uint64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// varInt reads a variable length integer and returns its value together with
// the number of bytes it was encoded with.
//
//	<= 0xFC  value itself
//	0xFD     followed by a 2 byte value
//	0xFE     followed by a 4 byte value
//	0xFF     followed by an 8 byte value
func (r *reader) varInt() (uint64, int, error) {
	prefix, err := r.u8()
	if err != nil {
		return 0, 0, err
	}
	switch prefix {
	case 0xFD:
		v, err := r.u16()
		return uint64(v), 3, err
	case 0xFE:
		v, err := r.u32()
		return uint64(v), 5, err
	case 0xFF:
		v, err := r.u64()
		return v, 9, err
	default:
		return uint64(prefix), 1, nil
	}
}
