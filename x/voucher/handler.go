package voucher

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/x"
)

const (
	issueTxCost    int64 = 150
	transferTxCost int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r voucherx.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&IssueMsg{}, IssueHandler{auth: auth, control: control})
	r.Handle(&TransferMsg{}, TransferHandler{auth: auth, control: control})
}

// IssueHandler processes IssueMsg requests. The receiving holder must sign
// the request, so no one gets surprise vouchers assigned to them.
type IssueHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ voucherx.Handler = IssueHandler{}

func (h IssueHandler) Check(ctx voucherx.Context, store voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &voucherx.CheckResult{GasAllocated: issueTxCost}, nil
}

func (h IssueHandler) Deliver(ctx voucherx.Context, store voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Issue(store, msg.ID, msg.Holder); err != nil {
		return nil, err
	}
	return &voucherx.DeliverResult{Data: msg.ID}, nil
}

func (h IssueHandler) validate(ctx voucherx.Context, tx voucherx.Tx) (*IssueMsg, error) {
	var msg IssueMsg
	if err := voucherx.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Holder) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "holder not signed")
	}
	return &msg, nil
}

// TransferHandler processes TransferMsg requests.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ voucherx.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx voucherx.Context, store voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &voucherx.CheckResult{GasAllocated: transferTxCost}, nil
}

func (h TransferHandler) Deliver(ctx voucherx.Context, store voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	holder, err := h.control.HolderOf(store, msg.ID)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(store, msg.ID, holder, msg.Destination); err != nil {
		return nil, err
	}
	return &voucherx.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx voucherx.Context, store voucherx.KVStore, tx voucherx.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := voucherx.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	holder, err := h.control.HolderOf(store, msg.ID)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, holder) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "holder not signed")
	}
	return &msg, nil
}
