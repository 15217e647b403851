package exchange

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/x/cash"
	"github.com/vx-one/voucherx/x/voucher"
)

// genesisExchange is used to parse the json from genesis file.
type genesisExchange struct {
	Authority      voucherx.Address `json:"authority"`
	FeeBasisPoints uint32           `json:"fee_basis_points"`
	FeeDestination voucherx.Address `json:"fee_destination"`
}

// Initializer fulfils the Initializer interface to create the exchange
// registry from the genesis file. An already initialized exchange is never
// overwritten.
type Initializer struct{}

var _ voucherx.Initializer = (*Initializer)(nil)

func (Initializer) FromGenesis(opts voucherx.Options, db voucherx.KVStore) error {
	var conf genesisExchange
	if err := opts.ReadOptions("exchange", &conf); err != nil {
		return err
	}
	if conf.Authority == nil && conf.FeeDestination == nil {
		// Nothing configured, the exchange can still be initialized
		// through a request later.
		return nil
	}
	if err := conf.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if err := conf.FeeDestination.Validate(); err != nil {
		return errors.Wrap(err, "fee destination")
	}
	c := newController(
		cash.NewController(cash.NewBucket()),
		voucher.NewController(voucher.NewBucket()),
	)
	if _, err := c.initialize(db, conf.Authority, conf.FeeBasisPoints, conf.FeeDestination); err != nil {
		return errors.Wrap(err, "cannot initialize exchange")
	}
	return nil
}
