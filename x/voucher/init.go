package voucher

import (
	"encoding/hex"

	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/errors"
)

// genesisVoucher is used to parse the json from genesis file.
type genesisVoucher struct {
	ID     string           `json:"id"`
	Holder voucherx.Address `json:"holder"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ voucherx.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial voucher info from genesis and save it to
// the database.
func (Initializer) FromGenesis(opts voucherx.Options, db voucherx.KVStore) error {
	var vouchers []genesisVoucher
	if err := opts.ReadOptions("voucher", &vouchers); err != nil {
		return err
	}
	control := NewController(NewBucket())
	for _, v := range vouchers {
		id, err := hex.DecodeString(v.ID)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "voucher ID %q: %s", v.ID, err)
		}
		if err := control.Issue(db, id, v.Holder); err != nil {
			return errors.Wrapf(err, "cannot issue voucher %q", v.ID)
		}
	}
	return nil
}
