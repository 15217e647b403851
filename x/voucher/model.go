package voucher

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/orm"
)

// BucketName is where we store the vouchers.
const BucketName = "voucher"

// IDLength is the size of every voucher ID.
const IDLength = 32

// tokenSchema is the current serialization schema version.
const tokenSchema = 1

// Token is a unique asset held by a single address.
type Token struct {
	// ID is the globally unique 32 byte voucher identifier.
	ID []byte
	// Holder is the address currently holding the voucher.
	Holder voucherx.Address
}

var _ orm.Model = (*Token)(nil)

func (t *Token) Validate() error {
	var errs error
	if len(t.ID) != IDLength {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "voucher ID must be %d bytes", IDLength))
	}
	errs = errors.Append(errs, t.Holder.Validate())
	return errs
}

func (t *Token) Copy() orm.Model {
	return &Token{
		ID:     append([]byte(nil), t.ID...),
		Holder: t.Holder.Clone(),
	}
}

// Marshal encodes the token as a schema byte followed by the fixed width ID
// and holder address.
func (t *Token) Marshal() ([]byte, error) {
	if len(t.ID) != IDLength {
		return nil, errors.Wrap(errors.ErrModel, "bad voucher ID")
	}
	if err := t.Holder.Validate(); err != nil {
		return nil, err
	}
	raw := make([]byte, 0, 1+IDLength+voucherx.AddressLength)
	raw = append(raw, tokenSchema)
	raw = append(raw, t.ID...)
	raw = append(raw, t.Holder...)
	return raw, nil
}

func (t *Token) Unmarshal(raw []byte) error {
	if len(raw) != 1+IDLength+voucherx.AddressLength {
		return errors.Wrap(errors.ErrInput, "bad voucher size")
	}
	if raw[0] != tokenSchema {
		return errors.Wrapf(errors.ErrType, "unknown voucher schema %d", raw[0])
	}
	t.ID = append([]byte(nil), raw[1:1+IDLength]...)
	t.Holder = voucherx.Address(append([]byte(nil), raw[1+IDLength:]...))
	return nil
}

// NewBucket returns a bucket for keeping vouchers, keyed by voucher ID.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName)
}
