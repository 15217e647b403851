package cash

import (
	"encoding/json"

	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/coin"
	"github.com/vx-one/voucherx/errors"
)

const (
	pathSendMsg = "cash/send"

	maxMemoSize = 128
)

// SendMsg is a request to move funds between two accounts.
type SendMsg struct {
	Source      voucherx.Address
	Destination voucherx.Address
	Amount      coin.Coin
	// Memo is a max 128 characters note attached to the transfer.
	Memo string
}

var _ voucherx.Msg = (*SendMsg)(nil)

func (SendMsg) Path() string {
	return pathSendMsg
}

func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, m.Source.Validate())
	errs = errors.Append(errs, m.Destination.Validate())
	if !m.Amount.IsPositive() {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrAmount, "non-positive amount %s", m.Amount))
	} else {
		errs = errors.Append(errs, m.Amount.Validate())
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return errs
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}
