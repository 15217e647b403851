package cash

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/coin"
	"github.com/vx-one/voucherx/errors"
)

// GenesisAccount is used to parse the json from genesis file. It uses
// address in hex, not bech32.
type GenesisAccount struct {
	Address voucherx.Address `json:"address"`
	Coins   []coin.Coin      `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ voucherx.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account info from genesis and save it to
// the database.
func (Initializer) FromGenesis(opts voucherx.Options, db voucherx.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrapf(err, "genesis account %q", acc.Address)
		}
		set, err := coin.CombineCoins(acc.Coins...)
		if err != nil {
			return errors.Wrapf(err, "genesis account %q", acc.Address)
		}
		wallet := Wallet{Coins: set}
		if err := bucket.Put(db, acc.Address, &wallet); err != nil {
			return errors.Wrapf(err, "cannot store %q wallet", acc.Address)
		}
	}
	return nil
}
