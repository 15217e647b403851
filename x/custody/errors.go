package custody

import "github.com/vx-one/voucherx/errors"

var (
	// ErrInvalidAddress is returned when a presented derivation does not
	// re-derive to the custody account address it claims to control.
	ErrInvalidAddress = errors.Register(1110, "invalid custody address")

	// ErrNoFreeNonce is returned when every nonce value for a derivation is
	// already occupied.
	ErrNoFreeNonce = errors.Register(1111, "no free custody nonce")
)
