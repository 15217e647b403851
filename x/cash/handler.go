package cash

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/x"
)

const sendTxCost int64 = 100

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r voucherx.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// SendHandler processes SendMsg requests.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ voucherx.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the transfer is authorized and well formed.
func (h SendHandler) Check(ctx voucherx.Context, store voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &voucherx.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the funds.
func (h SendHandler) Deliver(ctx voucherx.Context, store voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(store, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &voucherx.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx voucherx.Context, tx voucherx.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := voucherx.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source not signed")
	}
	return &msg, nil
}
