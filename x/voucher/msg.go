package voucher

import (
	"encoding/json"

	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/errors"
)

const (
	pathIssueMsg    = "voucher/issue"
	pathTransferMsg = "voucher/transfer"
)

// IssueMsg requests registration of a brand new voucher.
type IssueMsg struct {
	// ID is the 32 byte identifier of the new voucher.
	ID []byte
	// Holder receives the voucher.
	Holder voucherx.Address
}

var _ voucherx.Msg = (*IssueMsg)(nil)

func (IssueMsg) Path() string {
	return pathIssueMsg
}

func (m *IssueMsg) Validate() error {
	var errs error
	if len(m.ID) != IDLength {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "voucher ID must be %d bytes", IDLength))
	}
	errs = errors.Append(errs, m.Holder.Validate())
	return errs
}

func (m *IssueMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *IssueMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// TransferMsg requests moving a voucher to a new holder.
type TransferMsg struct {
	ID []byte
	// Destination is the new holder.
	Destination voucherx.Address
}

var _ voucherx.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	var errs error
	if len(m.ID) != IDLength {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "voucher ID must be %d bytes", IDLength))
	}
	errs = errors.Append(errs, m.Destination.Validate())
	return errs
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}
