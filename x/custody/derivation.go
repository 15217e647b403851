package custody

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/errors"
)

// Extension is the condition extension name of all custody accounts.
const Extension = "custody"

// Authority is the full derivation of a custody account address. Whoever
// can present a derivation matching the account address controls the
// account.
type Authority struct {
	// Tag scopes the derivation to one kind of custody account, for
	// example "listing" or "bid". It is used as the condition type and
	// must satisfy the condition format.
	Tag string
	// Seeds bind the account to its owning entities.
	Seeds [][]byte
	// Nonce disambiguates the derivation when the natural address is
	// already taken.
	Nonce uint8
}

// Condition builds the custody condition for this derivation.
func (a Authority) Condition() voucherx.Condition {
	return Derive(a.Tag, a.Seeds, a.Nonce)
}

// Address is a shortcut for Condition().Address().
func (a Authority) Address() voucherx.Address {
	return a.Condition().Address()
}

// Validate ensures the derivation is well formed.
func (a Authority) Validate() error {
	if len(a.Seeds) == 0 {
		return errors.Wrap(errors.ErrEmpty, "seeds")
	}
	for _, s := range a.Seeds {
		if len(s) == 0 {
			return errors.Wrap(errors.ErrEmpty, "seed")
		}
	}
	return a.Condition().Validate()
}

// Derive builds the custody condition out of a tag, seeds and a nonce. The
// seeds are length-prefixed before concatenation so that two different seed
// lists can never produce the same condition.
func Derive(tag string, seeds [][]byte, nonce uint8) voucherx.Condition {
	var data []byte
	for _, s := range seeds {
		data = append(data, byte(len(s)))
		data = append(data, s...)
	}
	data = append(data, nonce)
	return voucherx.NewCondition(Extension, tag, data)
}
