package sigverify

import (
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/gconf"
)

const packageName = "sigverify"

// Configuration declares the signature verification program that
// instructions must be addressed to.
type Configuration struct {
	ProgramID chainswap.Address `json:"program_id"`
}

func (c *Configuration) Validate() error {
	if err := c.ProgramID.Validate(); err != nil {
		return errors.Field("ProgramID", err, "signature verification program")
	}
	return nil
}

// LoadConfiguration returns the configuration stored in the database.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load sigverify configuration")
	}
	return &conf, nil
}

// Initializer stores the configuration from the genesis file.
type Initializer struct{}

var _ chainswap.Initializer = Initializer{}

func (Initializer) FromGenesis(opts chainswap.Options, db chainswap.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, packageName, &conf)
}
