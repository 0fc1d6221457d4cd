package swap

import (
	"fmt"

	"github.com/iov-one/chainswap/errors"
)

// Kind declares how a swap is locked.
type Kind int32

const (
	// KindHTLC is locked by the sha256 hash of a secret.
	KindHTLC Kind = iota
	// KindChain is locked by a commitment to a settlement chain output.
	KindChain
	// KindChainNonced is locked by a commitment to a settlement chain
	// output and the transaction nonce encoded in its locktime and
	// input sequences.
	KindChainNonced
	// KindChainTxhash is locked by a settlement chain transaction hash.
	KindChainTxhash

	kindCount = 4
)

var kindNames = [kindCount]string{
	KindHTLC:        "htlc",
	KindChain:       "chain",
	KindChainNonced: "chain_nonced",
	KindChainTxhash: "chain_txhash",
}

func (k Kind) Validate() error {
	if k < 0 || k >= kindCount {
		return errors.Wrapf(ErrInvalidKind, "%d", k)
	}
	return nil
}

func (k Kind) String() string {
	if k.Validate() != nil {
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
	return kindNames[k]
}

// IsChain returns true if the swap is claimed with a settlement chain
// proof.
func (k Kind) IsChain() bool {
	return k == KindChain || k == KindChainNonced || k == KindChainTxhash
}

// ParseKind returns the kind of given name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidKind, "%q", name)
}
