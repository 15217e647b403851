package exchange

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/coin"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/orm"
	"github.com/vx-one/voucherx/x/cash"
	"github.com/vx-one/voucherx/x/custody"
	"github.com/vx-one/voucherx/x/voucher"
)

// Custody derivation tags used by this extension.
const (
	tagExchange = "exchange"
	tagListing  = "listing"
	tagBid      = "bid"
)

// payFn performs one payment leg of a settlement.
type payFn func(dest voucherx.Address, amount coin.Coin) error

// controller bundles the state and collaborators every handler in this
// package works with.
type controller struct {
	exchanges orm.ModelBucket
	listings  orm.ModelBucket
	bids      orm.ModelBucket
	sales     orm.ModelBucket
	cash      cash.Controller
	vouchers  voucher.Controller
	custody   custody.Ledger
}

func newController(cashCtrl cash.Controller, vouchers voucher.Controller) controller {
	return controller{
		exchanges: NewExchangeBucket(),
		listings:  NewListingBucket(),
		bids:      NewBidBucket(),
		sales:     NewSaleRecordBucket(),
		cash:      cashCtrl,
		vouchers:  vouchers,
		custody:   custody.NewLedger(cashCtrl, vouchers),
	}
}

// initialize creates the singleton registry. It fails if the registry
// already exists. The registry opens its own custody account so the
// derivation nonce can be replayed later.
func (c controller) initialize(db voucherx.KVStore, authority voucherx.Address, feeBasisPoints uint32, feeDestination voucherx.Address) (*Exchange, error) {
	switch exists, err := c.exchanges.Has(db, registryKey); {
	case err != nil:
		return nil, err
	case exists:
		return nil, errors.Wrap(errors.ErrState, "exchange already initialized")
	}
	if feeBasisPoints > maxFeeBasisPoints {
		return nil, errors.Wrapf(ErrFeeTooHigh, "%d basis points", feeBasisPoints)
	}
	_, nonce, err := c.custody.Open(db, tagExchange, [][]byte{authority}, feeDestination)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open registry custody account")
	}
	exchange := Exchange{
		Authority:       authority.Clone(),
		FeeBasisPoints:  feeBasisPoints,
		FeeDestination:  feeDestination.Clone(),
		DerivationNonce: nonce,
	}
	if err := c.exchanges.Put(db, registryKey, &exchange); err != nil {
		return nil, err
	}
	return &exchange, nil
}

// loadExchange returns the singleton registry.
func (c controller) loadExchange(db voucherx.KVStore) (*Exchange, error) {
	var exchange Exchange
	if err := c.exchanges.One(db, registryKey, &exchange); err != nil {
		return nil, errors.Wrap(err, "exchange not initialized")
	}
	return &exchange, nil
}

func (c controller) saveExchange(db voucherx.KVStore, exchange *Exchange) error {
	return c.exchanges.Put(db, registryKey, exchange)
}

// split computes the fee cut of a sale. The seller amount and the fee sum
// up to the price exactly, the fee is truncated toward zero.
func split(price coin.Coin, feeBasisPoints uint32) (seller coin.Coin, fee coin.Coin, err error) {
	product, err := price.Multiply(int64(feeBasisPoints))
	if err != nil {
		return coin.Coin{}, coin.Coin{}, errors.Wrap(err, "fee multiplication")
	}
	fee, _, err = product.Divide(10000)
	if err != nil {
		return coin.Coin{}, coin.Coin{}, err
	}
	seller, err = price.Subtract(fee)
	if err != nil {
		return coin.Coin{}, coin.Coin{}, errors.Wrap(err, "fee subtraction")
	}
	return seller, fee, nil
}

// settle performs the payment legs of a sale: the seller amount and, when
// non-zero, the fee. The asset leg is up to the caller, within the same
// request.
func settle(pay payFn, seller voucherx.Address, feeDestination voucherx.Address, price coin.Coin, feeBasisPoints uint32) error {
	sellerAmount, fee, err := split(price, feeBasisPoints)
	if err != nil {
		return err
	}
	if err := pay(seller, sellerAmount); err != nil {
		return errors.Wrap(err, "seller leg")
	}
	if fee.IsPositive() {
		if err := pay(feeDestination, fee); err != nil {
			return errors.Wrap(err, "fee leg")
		}
	}
	return nil
}

// recordSale is the idempotent create-or-update of the per-voucher sale
// flag. A sale record is never reset to unsold.
func (c controller) recordSale(db voucherx.KVStore, assetID []byte, now voucherx.UnixTime) error {
	record := SaleRecord{
		AssetID:      append([]byte(nil), assetID...),
		Sold:         true,
		LastSaleTime: now,
	}
	return c.sales.Put(db, assetID, &record)
}

// isSold returns true if the voucher has ever been sold through the
// exchange.
func (c controller) isSold(db voucherx.KVStore, assetID []byte) (bool, error) {
	var record SaleRecord
	switch err := c.sales.One(db, assetID, &record); {
	case errors.ErrNotFound.Is(err):
		return false, nil
	case err != nil:
		return false, err
	}
	return record.Sold, nil
}
