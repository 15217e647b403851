package custody

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/orm"
)

// BucketName is where we store the custody account records.
const BucketName = "custody"

// accountSchema is the current serialization schema version.
const accountSchema = 1

// maxTagSize keeps the tag within the condition type format.
const maxTagSize = 10

// Account is the record of an open custody account, stored under the
// derived address.
type Account struct {
	// Tag is the derivation tag the account was opened with.
	Tag string
	// Nonce is the derivation nonce discovered when the account was
	// opened.
	Nonce uint8
	// Beneficiary receives any residual balance when the account is
	// closed.
	Beneficiary voucherx.Address
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	var errs error
	if len(a.Tag) == 0 || len(a.Tag) > maxTagSize {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "bad custody tag"))
	}
	errs = errors.Append(errs, a.Beneficiary.Validate())
	return errs
}

func (a *Account) Copy() orm.Model {
	return &Account{
		Tag:         a.Tag,
		Nonce:       a.Nonce,
		Beneficiary: a.Beneficiary.Clone(),
	}
}

// Marshal encodes the account as a schema byte, tag length and tag, the
// nonce and the fixed width beneficiary address.
func (a *Account) Marshal() ([]byte, error) {
	if len(a.Tag) == 0 || len(a.Tag) > maxTagSize {
		return nil, errors.Wrap(errors.ErrModel, "bad custody tag")
	}
	if err := a.Beneficiary.Validate(); err != nil {
		return nil, err
	}
	raw := []byte{accountSchema, byte(len(a.Tag))}
	raw = append(raw, a.Tag...)
	raw = append(raw, a.Nonce)
	raw = append(raw, a.Beneficiary...)
	return raw, nil
}

func (a *Account) Unmarshal(raw []byte) error {
	if len(raw) < 2 {
		return errors.Wrap(errors.ErrInput, "truncated custody account")
	}
	if raw[0] != accountSchema {
		return errors.Wrapf(errors.ErrType, "unknown custody account schema %d", raw[0])
	}
	tlen := int(raw[1])
	if len(raw) != 2+tlen+1+voucherx.AddressLength {
		return errors.Wrap(errors.ErrInput, "bad custody account size")
	}
	a.Tag = string(raw[2 : 2+tlen])
	a.Nonce = raw[2+tlen]
	a.Beneficiary = voucherx.Address(append([]byte(nil), raw[2+tlen+1:]...))
	return nil
}

// NewBucket returns a bucket for keeping custody accounts, keyed by the
// derived address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName)
}
