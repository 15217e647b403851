package exchange

import (
	"encoding/json"

	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/coin"
	"github.com/vx-one/voucherx/errors"
)

const (
	pathInitializeExchangeMsg = "exchange/initialize"
	pathCreateListingMsg      = "exchange/create_listing"
	pathCancelListingMsg      = "exchange/cancel_listing"
	pathFulfillListingMsg     = "exchange/fulfill_listing"
	pathCreateBidMsg          = "exchange/create_bid"
	pathCancelBidMsg          = "exchange/cancel_bid"
	pathAcceptBidMsg          = "exchange/accept_bid"
	pathMarkBidForRefundMsg   = "exchange/mark_bid_for_refund"
	pathRefundBidMsg          = "exchange/refund_bid"
)

func validateAssetID(id []byte) error {
	if len(id) != assetIDLength {
		return errors.Wrapf(errors.ErrInput, "asset ID must be %d bytes", assetIDLength)
	}
	return nil
}

func validatePrice(price coin.Coin) error {
	if !price.IsPositive() {
		return errors.Wrapf(ErrInvalidPrice, "%s", price)
	}
	return price.Validate()
}

// InitializeExchangeMsg creates the singleton exchange registry. The first
// signer becomes the authority.
type InitializeExchangeMsg struct {
	// FeeBasisPoints is the sale fee, at most 1000 (10%).
	FeeBasisPoints uint32
	// FeeDestination receives the fee cut of every sale.
	FeeDestination voucherx.Address
}

var _ voucherx.Msg = (*InitializeExchangeMsg)(nil)

func (InitializeExchangeMsg) Path() string {
	return pathInitializeExchangeMsg
}

func (m *InitializeExchangeMsg) Validate() error {
	var errs error
	if m.FeeBasisPoints > maxFeeBasisPoints {
		errs = errors.Append(errs, errors.Wrapf(ErrFeeTooHigh, "%d basis points", m.FeeBasisPoints))
	}
	errs = errors.Append(errs, m.FeeDestination.Validate())
	return errs
}

func (m *InitializeExchangeMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *InitializeExchangeMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// CreateListingMsg offers the signer's voucher for sale at a fixed price.
type CreateListingMsg struct {
	AssetID []byte
	Price   coin.Coin
}

var _ voucherx.Msg = (*CreateListingMsg)(nil)

func (CreateListingMsg) Path() string {
	return pathCreateListingMsg
}

func (m *CreateListingMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, validateAssetID(m.AssetID))
	errs = errors.Append(errs, validatePrice(m.Price))
	return errs
}

func (m *CreateListingMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *CreateListingMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// CancelListingMsg takes a listing off the market and returns the voucher
// to the owner.
type CancelListingMsg struct {
	Owner   voucherx.Address
	AssetID []byte
}

var _ voucherx.Msg = (*CancelListingMsg)(nil)

func (CancelListingMsg) Path() string {
	return pathCancelListingMsg
}

func (m *CancelListingMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, m.Owner.Validate())
	errs = errors.Append(errs, validateAssetID(m.AssetID))
	return errs
}

func (m *CancelListingMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *CancelListingMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// FulfillListingMsg buys a listed voucher at the asked price. The signer is
// the buyer.
type FulfillListingMsg struct {
	Owner   voucherx.Address
	AssetID []byte
}

var _ voucherx.Msg = (*FulfillListingMsg)(nil)

func (FulfillListingMsg) Path() string {
	return pathFulfillListingMsg
}

func (m *FulfillListingMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, m.Owner.Validate())
	errs = errors.Append(errs, validateAssetID(m.AssetID))
	return errs
}

func (m *FulfillListingMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *FulfillListingMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// CreateBidMsg offers to buy a voucher at the given price, escrowing the
// funds of the signer.
type CreateBidMsg struct {
	AssetID []byte
	Price   coin.Coin
}

var _ voucherx.Msg = (*CreateBidMsg)(nil)

func (CreateBidMsg) Path() string {
	return pathCreateBidMsg
}

func (m *CreateBidMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, validateAssetID(m.AssetID))
	errs = errors.Append(errs, validatePrice(m.Price))
	return errs
}

func (m *CreateBidMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *CreateBidMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// CancelBidMsg withdraws a bid and releases the escrowed funds back to the
// bidder.
type CancelBidMsg struct {
	Bidder  voucherx.Address
	AssetID []byte
}

var _ voucherx.Msg = (*CancelBidMsg)(nil)

func (CancelBidMsg) Path() string {
	return pathCancelBidMsg
}

func (m *CancelBidMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, m.Bidder.Validate())
	errs = errors.Append(errs, validateAssetID(m.AssetID))
	return errs
}

func (m *CancelBidMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *CancelBidMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// AcceptBidMsg sells the signer's voucher to the given bidder, paid out of
// the bid's escrowed funds.
type AcceptBidMsg struct {
	Bidder  voucherx.Address
	AssetID []byte
}

var _ voucherx.Msg = (*AcceptBidMsg)(nil)

func (AcceptBidMsg) Path() string {
	return pathAcceptBidMsg
}

func (m *AcceptBidMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, m.Bidder.Validate())
	errs = errors.Append(errs, validateAssetID(m.AssetID))
	return errs
}

func (m *AcceptBidMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *AcceptBidMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// MarkBidForRefundMsg flags a bid outlived by a sale, unlocking the refund
// for the bidder. Restricted to the exchange authority.
type MarkBidForRefundMsg struct {
	Bidder  voucherx.Address
	AssetID []byte
}

var _ voucherx.Msg = (*MarkBidForRefundMsg)(nil)

func (MarkBidForRefundMsg) Path() string {
	return pathMarkBidForRefundMsg
}

func (m *MarkBidForRefundMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, m.Bidder.Validate())
	errs = errors.Append(errs, validateAssetID(m.AssetID))
	return errs
}

func (m *MarkBidForRefundMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *MarkBidForRefundMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// RefundBidMsg reclaims the escrowed funds of a bid previously marked for
// refund.
type RefundBidMsg struct {
	Bidder  voucherx.Address
	AssetID []byte
}

var _ voucherx.Msg = (*RefundBidMsg)(nil)

func (RefundBidMsg) Path() string {
	return pathRefundBidMsg
}

func (m *RefundBidMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, m.Bidder.Validate())
	errs = errors.Append(errs, validateAssetID(m.AssetID))
	return errs
}

func (m *RefundBidMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *RefundBidMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}
