package voucher

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/orm"
)

// Mover is the interface used by other extensions to move vouchers between
// holders on behalf of their current holder.
type Mover interface {
	// Transfer gives the voucher away to a new holder. It fails with
	// ErrNotHolder unless src currently holds the voucher.
	Transfer(db voucherx.KVStore, id []byte, src voucherx.Address, dest voucherx.Address) error

	// HolderOf returns the address currently holding the voucher.
	HolderOf(db voucherx.KVStore, id []byte) (voucherx.Address, error)
}

// Controller is the full voucher registry functionality.
type Controller interface {
	Mover

	// Issue registers a new voucher under the given holder. It fails with
	// ErrDuplicate if the ID is already taken.
	Issue(db voucherx.KVStore, id []byte, holder voucherx.Address) error
}

// RegistryController implements Controller on top of a token bucket.
type RegistryController struct {
	bucket orm.ModelBucket
}

var _ Controller = RegistryController{}

// NewController returns a controller using the given bucket to store token
// state.
func NewController(bucket orm.ModelBucket) RegistryController {
	return RegistryController{bucket: bucket}
}

func (c RegistryController) Issue(db voucherx.KVStore, id []byte, holder voucherx.Address) error {
	switch exists, err := c.bucket.Has(db, id); {
	case err != nil:
		return err
	case exists:
		return errors.Wrapf(errors.ErrDuplicate, "voucher %x", id)
	}
	token := Token{ID: id, Holder: holder}
	return c.bucket.Put(db, id, &token)
}

func (c RegistryController) Transfer(db voucherx.KVStore, id []byte, src voucherx.Address, dest voucherx.Address) error {
	var token Token
	if err := c.bucket.One(db, id, &token); err != nil {
		return errors.Wrapf(err, "voucher %x", id)
	}
	if !token.Holder.Equals(src) {
		return errors.Wrapf(ErrNotHolder, "voucher %x held by %s", id, token.Holder)
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	token.Holder = dest.Clone()
	return c.bucket.Put(db, id, &token)
}

func (c RegistryController) HolderOf(db voucherx.KVStore, id []byte) (voucherx.Address, error) {
	var token Token
	if err := c.bucket.One(db, id, &token); err != nil {
		return nil, errors.Wrapf(err, "voucher %x", id)
	}
	return token.Holder, nil
}
