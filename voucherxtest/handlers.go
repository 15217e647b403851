package voucherxtest

import voucherx "github.com/vx-one/voucherx"

// Handler is a mock implementing voucherx.Handler interface. It counts the
// calls and returns the configured results.
type Handler struct {
	checkCall   int
	CheckResult voucherx.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult voucherx.DeliverResult
	DeliverErr    error
}

var _ voucherx.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	h.checkCall++
	return &h.CheckResult, h.CheckErr
}

func (h *Handler) Deliver(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	h.deliverCall++
	return &h.DeliverResult, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
