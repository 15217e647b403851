package voucher

import "github.com/vx-one/voucherx/errors"

var (
	// ErrNotHolder is returned when an operation requires the acting party
	// to currently hold the voucher, and it does not.
	ErrNotHolder = errors.Register(1100, "not the voucher holder")
)
