package app

import (
	"fmt"
	"testing"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/store"
	"github.com/stretchr/testify/require"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts chainswap.Options, kv chainswap.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(opts chainswap.Options, kv chainswap.KVStore) error {
	c.called++
	return nil
}

func TestInitChain(t *testing.T) {
	cases := []struct {
		file         string
		parseErr     bool
		initErr      *errors.Error
		wantParsedID string
		wantChainID  string
		wantCalled   int
		wantValue    []byte
	}{
		0: {file: "bad_file.json", parseErr: true, initErr: errors.ErrInput},
		1: {
			file:         "testdata/genesis.json",
			wantParsedID: "test-chain-67",
			wantChainID:  "test-chain-67",
			wantCalled:   1,
			wantValue:    []byte("secret"),
		},
		// Nothing is stored when an initializer fails.
		2: {
			file:         "testdata/bad_genesis.json",
			initErr:      errors.ErrInput,
			wantParsedID: "super-chain-22",
		},
		3: {
			file:         "testdata/bad_chain.json",
			initErr:      errors.ErrInput,
			wantParsedID: "x",
		},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			gen, err := LoadGenesis(tc.file)
			if tc.parseErr {
				require.True(t, errors.ErrInput.Is(err), "%+v", err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.wantParsedID, gen.ChainID)

			c := new(countInit)
			db := store.MemStore()
			err = InitChain(db, gen, ChainInitializers(dummyInit{}, c))
			require.True(t, tc.initErr.Is(err), "%+v", err)

			chainID, err := loadChainID(db)
			require.NoError(t, err)
			require.Equal(t, tc.wantChainID, chainID)
			require.Equal(t, tc.wantCalled, c.called)

			val, err := db.Get([]byte(dummyKey))
			require.NoError(t, err)
			require.Equal(t, tc.wantValue, val)
		})
	}
}

func TestInitChainOnce(t *testing.T) {
	db := store.MemStore()
	gen := Genesis{ChainID: "once-chain-1"}
	require.NoError(t, InitChain(db, gen, ChainInitializers()))
	err := InitChain(db, gen, ChainInitializers())
	require.True(t, errors.ErrState.Is(err), "%+v", err)
}
