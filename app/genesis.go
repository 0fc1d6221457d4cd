package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
)

// Genesis file format.
type Genesis struct {
	ChainID    string            `json:"chain_id"`
	AppOptions chainswap.Options `json:"app_options"`
}

// LoadGenesis tries to load a given file into a Genesis struct.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...chainswap.Initializer) chainswap.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []chainswap.Initializer
}

// FromGenesis will pass opts to all Initializers in the list, aborting
// at the first error.
func (c chainInitializer) FromGenesis(opts chainswap.Options, kv chainswap.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

// InitChain stores the chain id and runs all initializers. Nothing is
// written unless every step succeeds.
func InitChain(db chainswap.CacheableKVStore, gen Genesis, init chainswap.Initializer) error {
	cache := db.CacheWrap()
	defer cache.Discard()

	if err := saveChainID(cache, gen.ChainID); err != nil {
		return err
	}
	if err := init.FromGenesis(gen.AppOptions, cache); err != nil {
		return errors.Wrap(err, "initialize from genesis")
	}
	return cache.Write()
}

//------- storing chainID ---------

const (
	chainIDKey = "_cs:chainID"
	heightKey  = "_cs:height"
)

// loadChainID returns the chain id stored if any.
func loadChainID(kv chainswap.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name.
func saveChainID(kv chainswap.KVStore, chainID string) error {
	if !chainswap.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	k := []byte(chainIDKey)
	switch has, err := kv.Has(k); {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case has:
		return errors.Wrap(errors.ErrState, "chain id already set")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
