package exchange

import "github.com/vx-one/voucherx/errors"

var (
	// ErrFeeTooHigh is returned when configuring a fee above the allowed
	// maximum.
	ErrFeeTooHigh = errors.Register(1200, "fee too high")

	// ErrInvalidPrice is returned for a zero or negative price.
	ErrInvalidPrice = errors.Register(1201, "invalid price")

	// ErrNotListingOwner is returned when anyone but the listing owner
	// tries to manage a listing.
	ErrNotListingOwner = errors.Register(1202, "not the listing owner")

	// ErrNotBidder is returned when anyone but the bidder tries to manage
	// a bid.
	ErrNotBidder = errors.Register(1203, "not the bidder")

	// ErrNotAuthority is returned when a registry operation is attempted
	// by anyone but the exchange authority.
	ErrNotAuthority = errors.Register(1204, "not the exchange authority")

	// ErrInsufficientFunds is returned when the payer cannot cover the
	// price.
	ErrInsufficientFunds = errors.Register(1205, "insufficient funds")

	// ErrListingNotActive is returned when operating on a closed listing.
	ErrListingNotActive = errors.Register(1206, "listing not active")

	// ErrBidNotActive is returned when operating on a closed bid.
	ErrBidNotActive = errors.Register(1207, "bid not active")

	// ErrInsufficientVoucherAmount is returned when the expected holder no
	// longer holds the voucher.
	ErrInsufficientVoucherAmount = errors.Register(1208, "insufficient voucher amount")

	// ErrVoucherAlreadySold is returned when bidding on a voucher that has
	// already been sold.
	ErrVoucherAlreadySold = errors.Register(1209, "voucher already sold")

	// ErrBidNotRequiresRefund is returned when the bid refund state does
	// not allow the requested transition.
	ErrBidNotRequiresRefund = errors.Register(1210, "bid does not require refund")

	// ErrInvalidBidState is returned when a bid record contradicts its
	// escrow, for example when the escrowed balance no longer covers the
	// bid price.
	ErrInvalidBidState = errors.Register(1211, "invalid bid state")
)
