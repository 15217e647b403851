package exchange

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/coin"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/orm"
	"github.com/vx-one/voucherx/x/voucher"
)

const (
	// maxFeeBasisPoints caps the exchange fee at 10%.
	maxFeeBasisPoints = 1000

	// assetIDLength is the fixed size of every voucher ID.
	assetIDLength = voucher.IDLength
)

// registryKey is the key of the singleton Exchange record.
var registryKey = []byte("registry")

// Exchange is the singleton marketplace configuration plus running
// counters.
type Exchange struct {
	// Authority may mark stale bids for refund.
	Authority voucherx.Address
	// FeeBasisPoints is the sale fee in 1/100 of a percent, at most 1000.
	FeeBasisPoints uint32
	// FeeDestination receives the fee cut of every sale.
	FeeDestination voucherx.Address
	// TotalListings counts the currently open listings.
	TotalListings uint64
	// TotalBids counts the currently open bids.
	TotalBids uint64
	// DerivationNonce is the nonce discovered when the registry opened its
	// own custody account at initialization.
	DerivationNonce uint8
}

var _ orm.Model = (*Exchange)(nil)

func (e *Exchange) Validate() error {
	var errs error
	errs = errors.Append(errs, e.Authority.Validate())
	errs = errors.Append(errs, e.FeeDestination.Validate())
	if e.FeeBasisPoints > maxFeeBasisPoints {
		errs = errors.Append(errs, errors.Wrapf(ErrFeeTooHigh, "%d basis points", e.FeeBasisPoints))
	}
	return errs
}

func (e *Exchange) Copy() orm.Model {
	cpy := *e
	cpy.Authority = e.Authority.Clone()
	cpy.FeeDestination = e.FeeDestination.Clone()
	return &cpy
}

// IncrementListings bumps the open listings counter.
func (e *Exchange) IncrementListings() {
	e.TotalListings++
}

// DecrementListings lowers the open listings counter, saturating at zero.
func (e *Exchange) DecrementListings() {
	if e.TotalListings > 0 {
		e.TotalListings--
	}
}

// IncrementBids bumps the open bids counter.
func (e *Exchange) IncrementBids() {
	e.TotalBids++
}

// DecrementBids lowers the open bids counter, saturating at zero.
func (e *Exchange) DecrementBids() {
	if e.TotalBids > 0 {
		e.TotalBids--
	}
}

// Listing is a standing offer to sell one voucher at a fixed price. It
// stays in the store after closing, flagged inactive.
type Listing struct {
	Owner   voucherx.Address
	AssetID []byte
	// CustodyAccount holds the escrowed voucher while the listing is
	// active.
	CustodyAccount voucherx.Address
	Price          coin.Coin
	Active         bool
	// CustodyNonce replays the custody account derivation.
	CustodyNonce uint8
}

var _ orm.Model = (*Listing)(nil)

func (l *Listing) Validate() error {
	var errs error
	errs = errors.Append(errs, l.Owner.Validate())
	if len(l.AssetID) != assetIDLength {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "bad asset ID size"))
	}
	errs = errors.Append(errs, l.CustodyAccount.Validate())
	if !l.Price.IsPositive() {
		errs = errors.Append(errs, errors.Wrapf(ErrInvalidPrice, "%s", l.Price))
	} else {
		errs = errors.Append(errs, l.Price.Validate())
	}
	return errs
}

func (l *Listing) Copy() orm.Model {
	cpy := *l
	cpy.Owner = l.Owner.Clone()
	cpy.AssetID = append([]byte(nil), l.AssetID...)
	cpy.CustodyAccount = l.CustodyAccount.Clone()
	return &cpy
}

// Bid is a standing offer to buy one voucher at a stated price, backed by
// escrowed funds. It stays in the store after closing, flagged inactive.
type Bid struct {
	Bidder  voucherx.Address
	AssetID []byte
	Price   coin.Coin
	// CustodyAccount holds the escrowed funds while the bid is active.
	CustodyAccount voucherx.Address
	Active         bool
	// RequiresRefund is set by the authority once the voucher sold
	// elsewhere, unlocking the refund for the bidder.
	RequiresRefund bool
	// CustodyNonce replays the custody account derivation.
	CustodyNonce uint8
}

var _ orm.Model = (*Bid)(nil)

func (b *Bid) Validate() error {
	var errs error
	errs = errors.Append(errs, b.Bidder.Validate())
	if len(b.AssetID) != assetIDLength {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "bad asset ID size"))
	}
	errs = errors.Append(errs, b.CustodyAccount.Validate())
	if !b.Price.IsPositive() {
		errs = errors.Append(errs, errors.Wrapf(ErrInvalidPrice, "%s", b.Price))
	} else {
		errs = errors.Append(errs, b.Price.Validate())
	}
	return errs
}

func (b *Bid) Copy() orm.Model {
	cpy := *b
	cpy.Bidder = b.Bidder.Clone()
	cpy.AssetID = append([]byte(nil), b.AssetID...)
	cpy.CustodyAccount = b.CustodyAccount.Clone()
	return &cpy
}

// SaleRecord is the durable per-voucher flag that the voucher has been
// sold. It is never reset to unsold.
type SaleRecord struct {
	AssetID []byte
	Sold    bool
	// LastSaleTime is the block time of the most recent sale, unix
	// seconds.
	LastSaleTime voucherx.UnixTime
}

var _ orm.Model = (*SaleRecord)(nil)

func (s *SaleRecord) Validate() error {
	var errs error
	if len(s.AssetID) != assetIDLength {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "bad asset ID size"))
	}
	errs = errors.Append(errs, s.LastSaleTime.Validate())
	return errs
}

func (s *SaleRecord) Copy() orm.Model {
	cpy := *s
	cpy.AssetID = append([]byte(nil), s.AssetID...)
	return &cpy
}

// NewExchangeBucket returns a bucket for the singleton Exchange record.
func NewExchangeBucket() orm.ModelBucket {
	return orm.NewModelBucket("exchange")
}

// NewListingBucket returns a bucket for listings, keyed by the derived
// (owner, asset) address.
func NewListingBucket() orm.ModelBucket {
	return orm.NewModelBucket("listing")
}

// NewBidBucket returns a bucket for bids, keyed by the derived
// (bidder, asset) address.
func NewBidBucket() orm.ModelBucket {
	return orm.NewModelBucket("bid")
}

// NewSaleRecordBucket returns a bucket for sale records, keyed by asset ID.
func NewSaleRecordBucket() orm.ModelBucket {
	return orm.NewModelBucket("sale")
}

// listingKey derives the storage key of a listing. One owner can have at
// most one listing per asset.
func listingKey(owner voucherx.Address, assetID []byte) []byte {
	return voucherx.NewCondition("exchange", "listing", append(owner.Clone(), assetID...)).Address()
}

// bidKey derives the storage key of a bid. One bidder can have at most one
// bid per asset.
func bidKey(bidder voucherx.Address, assetID []byte) []byte {
	return voucherx.NewCondition("exchange", "bid", append(bidder.Clone(), assetID...)).Address()
}
