package exchange

import (
	"fmt"

	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/coin"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/x"
	"github.com/vx-one/voucherx/x/cash"
	"github.com/vx-one/voucherx/x/custody"
	"github.com/vx-one/voucherx/x/voucher"
)

const (
	initializeCost     int64 = 100
	createListingCost  int64 = 300
	cancelListingCost  int64 = 150
	fulfillListingCost int64 = 500
	createBidCost      int64 = 300
	cancelBidCost      int64 = 150
	acceptBidCost      int64 = 500
	markRefundCost     int64 = 100
	refundBidCost      int64 = 150
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r voucherx.Registry, auth x.Authenticator, cashCtrl cash.Controller, vouchers voucher.Controller) {
	c := newController(cashCtrl, vouchers)
	r.Handle(&InitializeExchangeMsg{}, InitializeExchangeHandler{auth: auth, c: c})
	r.Handle(&CreateListingMsg{}, CreateListingHandler{auth: auth, c: c})
	r.Handle(&CancelListingMsg{}, CancelListingHandler{auth: auth, c: c})
	r.Handle(&FulfillListingMsg{}, FulfillListingHandler{auth: auth, c: c})
	r.Handle(&CreateBidMsg{}, CreateBidHandler{auth: auth, c: c})
	r.Handle(&CancelBidMsg{}, CancelBidHandler{auth: auth, c: c})
	r.Handle(&AcceptBidMsg{}, AcceptBidHandler{auth: auth, c: c})
	r.Handle(&MarkBidForRefundMsg{}, MarkBidForRefundHandler{auth: auth, c: c})
	r.Handle(&RefundBidMsg{}, RefundBidHandler{auth: auth, c: c})
}

func listingSeeds(owner voucherx.Address, assetID []byte) [][]byte {
	return [][]byte{owner, assetID}
}

func bidSeeds(bidder voucherx.Address, assetID []byte) [][]byte {
	return [][]byte{bidder, assetID}
}

// InitializeExchangeHandler creates the singleton registry. The main signer
// becomes the authority.
type InitializeExchangeHandler struct {
	auth x.Authenticator
	c    controller
}

var _ voucherx.Handler = InitializeExchangeHandler{}

func (h InitializeExchangeHandler) Check(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &voucherx.CheckResult{GasAllocated: initializeCost}, nil
}

func (h InitializeExchangeHandler) Deliver(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	msg, authority, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.c.initialize(db, authority, msg.FeeBasisPoints, msg.FeeDestination); err != nil {
		return nil, err
	}
	return &voucherx.DeliverResult{}, nil
}

func (h InitializeExchangeHandler) validate(ctx voucherx.Context, tx voucherx.Tx) (*InitializeExchangeMsg, voucherx.Address, error) {
	var msg InitializeExchangeMsg
	if err := voucherx.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, signer.Address(), nil
}

// CreateListingHandler puts the signer's voucher up for sale, moving it
// into custody.
type CreateListingHandler struct {
	auth x.Authenticator
	c    controller
}

var _ voucherx.Handler = CreateListingHandler{}

func (h CreateListingHandler) Check(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &voucherx.CheckResult{GasAllocated: createListingCost}, nil
}

func (h CreateListingHandler) Deliver(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	acct, nonce, err := h.c.custody.Open(db, tagListing, listingSeeds(owner, msg.AssetID), owner)
	if err != nil {
		return nil, err
	}
	if err := h.c.custody.DepositVoucher(db, msg.AssetID, owner, acct); err != nil {
		return nil, err
	}
	listing := Listing{
		Owner:          owner,
		AssetID:        msg.AssetID,
		CustodyAccount: acct,
		Price:          msg.Price,
		Active:         true,
		CustodyNonce:   nonce,
	}
	key := listingKey(owner, msg.AssetID)
	if err := h.c.listings.Put(db, key, &listing); err != nil {
		return nil, err
	}
	exchange, err := h.c.loadExchange(db)
	if err != nil {
		return nil, err
	}
	exchange.IncrementListings()
	if err := h.c.saveExchange(db, exchange); err != nil {
		return nil, err
	}
	return &voucherx.DeliverResult{Data: key}, nil
}

func (h CreateListingHandler) validate(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*CreateListingMsg, voucherx.Address, error) {
	var msg CreateListingMsg
	if err := voucherx.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if _, err := h.c.loadExchange(db); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	owner := signer.Address()
	holder, err := h.c.vouchers.HolderOf(db, msg.AssetID)
	if err != nil {
		return nil, nil, err
	}
	if !holder.Equals(owner) {
		return nil, nil, errors.Wrapf(voucher.ErrNotHolder, "voucher held by %s", holder)
	}
	var existing Listing
	switch err := h.c.listings.One(db, listingKey(owner, msg.AssetID), &existing); {
	case err == nil:
		// A closed listing leaves an inactive record behind, its slot
		// can be reused.
		if existing.Active {
			return nil, nil, errors.Wrap(errors.ErrDuplicate, "listing already active")
		}
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	return &msg, owner, nil
}

// CancelListingHandler takes a listing off the market and returns the
// voucher to the owner.
type CancelListingHandler struct {
	auth x.Authenticator
	c    controller
}

var _ voucherx.Handler = CancelListingHandler{}

func (h CancelListingHandler) Check(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &voucherx.CheckResult{GasAllocated: cancelListingCost}, nil
}

func (h CancelListingHandler) Deliver(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	listing, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	authority := custody.Authority{
		Tag:   tagListing,
		Seeds: listingSeeds(listing.Owner, listing.AssetID),
		Nonce: listing.CustodyNonce,
	}
	if err := h.c.custody.WithdrawVoucher(db, authority, listing.AssetID, listing.Owner); err != nil {
		return nil, err
	}
	if err := h.c.custody.Close(db, authority); err != nil {
		return nil, err
	}
	listing.Active = false
	if err := h.c.listings.Put(db, listingKey(listing.Owner, listing.AssetID), listing); err != nil {
		return nil, err
	}
	exchange, err := h.c.loadExchange(db)
	if err != nil {
		return nil, err
	}
	exchange.DecrementListings()
	if err := h.c.saveExchange(db, exchange); err != nil {
		return nil, err
	}
	return &voucherx.DeliverResult{}, nil
}

func (h CancelListingHandler) validate(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*Listing, error) {
	var msg CancelListingMsg
	if err := voucherx.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	var listing Listing
	if err := h.c.listings.One(db, listingKey(msg.Owner, msg.AssetID), &listing); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, listing.Owner) {
		return nil, errors.Wrap(ErrNotListingOwner, "owner not signed")
	}
	if !listing.Active {
		return nil, ErrListingNotActive
	}
	return &listing, nil
}

// FulfillListingHandler buys a listed voucher at the asked price. The
// signer pays, the owner and the fee destination receive the split and the
// voucher leaves custody for the buyer.
type FulfillListingHandler struct {
	auth x.Authenticator
	c    controller
}

var _ voucherx.Handler = FulfillListingHandler{}

func (h FulfillListingHandler) Check(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &voucherx.CheckResult{GasAllocated: fulfillListingCost}, nil
}

func (h FulfillListingHandler) Deliver(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	_, listing, buyer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	exchange, err := h.c.loadExchange(db)
	if err != nil {
		return nil, err
	}
	now, err := voucherx.BlockTime(ctx)
	if err != nil {
		return nil, err
	}

	// Payment legs first, out of the buyer's wallet.
	pay := func(dest voucherx.Address, amount coin.Coin) error {
		return h.c.cash.MoveCoins(db, buyer, dest, amount)
	}
	if err := settle(pay, listing.Owner, exchange.FeeDestination, listing.Price, exchange.FeeBasisPoints); err != nil {
		return nil, err
	}

	// Asset leg, out of custody.
	authority := custody.Authority{
		Tag:   tagListing,
		Seeds: listingSeeds(listing.Owner, listing.AssetID),
		Nonce: listing.CustodyNonce,
	}
	if err := h.c.custody.WithdrawVoucher(db, authority, listing.AssetID, buyer); err != nil {
		return nil, err
	}
	if err := h.c.custody.Close(db, authority); err != nil {
		return nil, err
	}

	if err := h.c.recordSale(db, listing.AssetID, voucherx.AsUnixTime(now)); err != nil {
		return nil, err
	}
	listing.Active = false
	if err := h.c.listings.Put(db, listingKey(listing.Owner, listing.AssetID), listing); err != nil {
		return nil, err
	}
	exchange.DecrementListings()
	if err := h.c.saveExchange(db, exchange); err != nil {
		return nil, err
	}

	voucherx.GetLogger(ctx).Info("listing fulfilled",
		"asset", fmt.Sprintf("%x", listing.AssetID),
		"price", listing.Price.String(),
		"buyer", buyer.String())
	return &voucherx.DeliverResult{}, nil
}

func (h FulfillListingHandler) validate(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*FulfillListingMsg, *Listing, voucherx.Address, error) {
	var msg FulfillListingMsg
	if err := voucherx.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, err
	}
	if _, err := h.c.loadExchange(db); err != nil {
		return nil, nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	buyer := signer.Address()
	var listing Listing
	if err := h.c.listings.One(db, listingKey(msg.Owner, msg.AssetID), &listing); err != nil {
		return nil, nil, nil, err
	}
	if !listing.Active {
		return nil, nil, nil, ErrListingNotActive
	}
	balance, err := h.c.cash.Balance(db, buyer)
	switch {
	case errors.ErrEmpty.Is(err):
		return nil, nil, nil, errors.Wrapf(ErrInsufficientFunds, "empty account %s", buyer)
	case err != nil:
		return nil, nil, nil, err
	}
	if !balance.Contains(listing.Price) {
		return nil, nil, nil, errors.Wrapf(ErrInsufficientFunds, "%s cannot pay %s", buyer, listing.Price)
	}
	holder, err := h.c.vouchers.HolderOf(db, listing.AssetID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !holder.Equals(listing.CustodyAccount) {
		return nil, nil, nil, errors.Wrap(ErrInsufficientVoucherAmount, "voucher not in custody")
	}
	if _, err := voucherx.BlockTime(ctx); err != nil {
		return nil, nil, nil, err
	}
	return &msg, &listing, buyer, nil
}

// CreateBidHandler offers to buy a voucher, escrowing the signer's funds.
type CreateBidHandler struct {
	auth x.Authenticator
	c    controller
}

var _ voucherx.Handler = CreateBidHandler{}

func (h CreateBidHandler) Check(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &voucherx.CheckResult{GasAllocated: createBidCost}, nil
}

func (h CreateBidHandler) Deliver(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	msg, bidder, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	acct, nonce, err := h.c.custody.Open(db, tagBid, bidSeeds(bidder, msg.AssetID), bidder)
	if err != nil {
		return nil, err
	}
	if err := h.c.custody.Deposit(db, bidder, acct, msg.Price); err != nil {
		return nil, err
	}
	bid := Bid{
		Bidder:         bidder,
		AssetID:        msg.AssetID,
		Price:          msg.Price,
		CustodyAccount: acct,
		Active:         true,
		RequiresRefund: false,
		CustodyNonce:   nonce,
	}
	key := bidKey(bidder, msg.AssetID)
	if err := h.c.bids.Put(db, key, &bid); err != nil {
		return nil, err
	}
	exchange, err := h.c.loadExchange(db)
	if err != nil {
		return nil, err
	}
	exchange.IncrementBids()
	if err := h.c.saveExchange(db, exchange); err != nil {
		return nil, err
	}
	return &voucherx.DeliverResult{Data: key}, nil
}

func (h CreateBidHandler) validate(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*CreateBidMsg, voucherx.Address, error) {
	var msg CreateBidMsg
	if err := voucherx.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if _, err := h.c.loadExchange(db); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	bidder := signer.Address()
	switch sold, err := h.c.isSold(db, msg.AssetID); {
	case err != nil:
		return nil, nil, err
	case sold:
		return nil, nil, errors.Wrapf(ErrVoucherAlreadySold, "asset %x", msg.AssetID)
	}
	balance, err := h.c.cash.Balance(db, bidder)
	switch {
	case errors.ErrEmpty.Is(err):
		return nil, nil, errors.Wrapf(ErrInsufficientFunds, "empty account %s", bidder)
	case err != nil:
		return nil, nil, err
	}
	if !balance.Contains(msg.Price) {
		return nil, nil, errors.Wrapf(ErrInsufficientFunds, "%s cannot escrow %s", bidder, msg.Price)
	}
	var existing Bid
	switch err := h.c.bids.One(db, bidKey(bidder, msg.AssetID), &existing); {
	case err == nil:
		if existing.Active {
			return nil, nil, errors.Wrap(errors.ErrDuplicate, "bid already active")
		}
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	return &msg, bidder, nil
}

// CancelBidHandler withdraws a bid, releasing the escrow back to the
// bidder.
type CancelBidHandler struct {
	auth x.Authenticator
	c    controller
}

var _ voucherx.Handler = CancelBidHandler{}

func (h CancelBidHandler) Check(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &voucherx.CheckResult{GasAllocated: cancelBidCost}, nil
}

func (h CancelBidHandler) Deliver(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	bid, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.closeBidEscrow(db, bid); err != nil {
		return nil, err
	}
	bid.Active = false
	if err := h.c.bids.Put(db, bidKey(bid.Bidder, bid.AssetID), bid); err != nil {
		return nil, err
	}
	exchange, err := h.c.loadExchange(db)
	if err != nil {
		return nil, err
	}
	exchange.DecrementBids()
	if err := h.c.saveExchange(db, exchange); err != nil {
		return nil, err
	}
	return &voucherx.DeliverResult{}, nil
}

// closeBidEscrow returns the escrowed price to the bidder and deletes the
// custody account.
func (h CancelBidHandler) closeBidEscrow(db voucherx.KVStore, bid *Bid) error {
	authority := custody.Authority{
		Tag:   tagBid,
		Seeds: bidSeeds(bid.Bidder, bid.AssetID),
		Nonce: bid.CustodyNonce,
	}
	if err := h.c.custody.Withdraw(db, authority, bid.Bidder, bid.Price); err != nil {
		return err
	}
	return h.c.custody.Close(db, authority)
}

func (h CancelBidHandler) validate(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*Bid, error) {
	var msg CancelBidMsg
	if err := voucherx.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	var bid Bid
	if err := h.c.bids.One(db, bidKey(msg.Bidder, msg.AssetID), &bid); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, bid.Bidder) {
		return nil, errors.Wrap(ErrNotBidder, "bidder not signed")
	}
	if !bid.Active {
		return nil, ErrBidNotActive
	}
	return &bid, nil
}

// AcceptBidHandler sells the signer's voucher to the bidder, paid out of
// the escrowed funds.
type AcceptBidHandler struct {
	auth x.Authenticator
	c    controller
}

var _ voucherx.Handler = AcceptBidHandler{}

func (h AcceptBidHandler) Check(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &voucherx.CheckResult{GasAllocated: acceptBidCost}, nil
}

func (h AcceptBidHandler) Deliver(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	bid, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	exchange, err := h.c.loadExchange(db)
	if err != nil {
		return nil, err
	}
	now, err := voucherx.BlockTime(ctx)
	if err != nil {
		return nil, err
	}

	// Payment legs first, out of the escrowed funds.
	authority := custody.Authority{
		Tag:   tagBid,
		Seeds: bidSeeds(bid.Bidder, bid.AssetID),
		Nonce: bid.CustodyNonce,
	}
	pay := func(dest voucherx.Address, amount coin.Coin) error {
		return h.c.custody.Withdraw(db, authority, dest, amount)
	}
	if err := settle(pay, owner, exchange.FeeDestination, bid.Price, exchange.FeeBasisPoints); err != nil {
		return nil, err
	}

	// Asset leg, straight from the owner to the bidder.
	if err := h.c.vouchers.Transfer(db, bid.AssetID, owner, bid.Bidder); err != nil {
		return nil, err
	}
	if err := h.c.custody.Close(db, authority); err != nil {
		return nil, err
	}

	if err := h.c.recordSale(db, bid.AssetID, voucherx.AsUnixTime(now)); err != nil {
		return nil, err
	}
	bid.Active = false
	if err := h.c.bids.Put(db, bidKey(bid.Bidder, bid.AssetID), bid); err != nil {
		return nil, err
	}
	exchange.DecrementBids()
	if err := h.c.saveExchange(db, exchange); err != nil {
		return nil, err
	}

	voucherx.GetLogger(ctx).Info("bid accepted",
		"asset", fmt.Sprintf("%x", bid.AssetID),
		"price", bid.Price.String(),
		"bidder", bid.Bidder.String())
	return &voucherx.DeliverResult{}, nil
}

func (h AcceptBidHandler) validate(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*Bid, voucherx.Address, error) {
	var msg AcceptBidMsg
	if err := voucherx.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if _, err := h.c.loadExchange(db); err != nil {
		return nil, nil, err
	}
	var bid Bid
	if err := h.c.bids.One(db, bidKey(msg.Bidder, msg.AssetID), &bid); err != nil {
		return nil, nil, err
	}
	if !bid.Active {
		return nil, nil, ErrBidNotActive
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	owner := signer.Address()
	holder, err := h.c.vouchers.HolderOf(db, bid.AssetID)
	if err != nil {
		return nil, nil, err
	}
	if !holder.Equals(owner) {
		return nil, nil, errors.Wrapf(voucher.ErrNotHolder, "voucher held by %s", holder)
	}
	escrowed, err := h.c.cash.Balance(db, bid.CustodyAccount)
	if err != nil || !escrowed.Contains(bid.Price) {
		return nil, nil, errors.Wrapf(ErrInvalidBidState, "escrow does not cover %s", bid.Price)
	}
	if _, err := voucherx.BlockTime(ctx); err != nil {
		return nil, nil, err
	}
	return &bid, owner, nil
}

// MarkBidForRefundHandler flags a bid outlived by a sale. Restricted to the
// exchange authority.
type MarkBidForRefundHandler struct {
	auth x.Authenticator
	c    controller
}

var _ voucherx.Handler = MarkBidForRefundHandler{}

func (h MarkBidForRefundHandler) Check(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &voucherx.CheckResult{GasAllocated: markRefundCost}, nil
}

func (h MarkBidForRefundHandler) Deliver(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	bid, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	bid.RequiresRefund = true
	if err := h.c.bids.Put(db, bidKey(bid.Bidder, bid.AssetID), bid); err != nil {
		return nil, err
	}
	return &voucherx.DeliverResult{}, nil
}

func (h MarkBidForRefundHandler) validate(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*Bid, error) {
	var msg MarkBidForRefundMsg
	if err := voucherx.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	exchange, err := h.c.loadExchange(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, exchange.Authority) {
		return nil, errors.Wrap(ErrNotAuthority, "authority not signed")
	}
	switch sold, err := h.c.isSold(db, msg.AssetID); {
	case err != nil:
		return nil, err
	case !sold:
		return nil, errors.Wrapf(errors.ErrState, "asset %x not sold", msg.AssetID)
	}
	var bid Bid
	if err := h.c.bids.One(db, bidKey(msg.Bidder, msg.AssetID), &bid); err != nil {
		return nil, err
	}
	if !bid.Active {
		return nil, ErrBidNotActive
	}
	if bid.RequiresRefund {
		return nil, errors.Wrap(ErrBidNotRequiresRefund, "already marked")
	}
	return &bid, nil
}

// RefundBidHandler reclaims the escrow of a bid previously marked for
// refund.
type RefundBidHandler struct {
	auth x.Authenticator
	c    controller
}

var _ voucherx.Handler = RefundBidHandler{}

func (h RefundBidHandler) Check(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &voucherx.CheckResult{GasAllocated: refundBidCost}, nil
}

func (h RefundBidHandler) Deliver(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*voucherx.DeliverResult, error) {
	bid, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	authority := custody.Authority{
		Tag:   tagBid,
		Seeds: bidSeeds(bid.Bidder, bid.AssetID),
		Nonce: bid.CustodyNonce,
	}
	if err := h.c.custody.Withdraw(db, authority, bid.Bidder, bid.Price); err != nil {
		return nil, err
	}
	if err := h.c.custody.Close(db, authority); err != nil {
		return nil, err
	}
	bid.Active = false
	bid.RequiresRefund = false
	if err := h.c.bids.Put(db, bidKey(bid.Bidder, bid.AssetID), bid); err != nil {
		return nil, err
	}
	exchange, err := h.c.loadExchange(db)
	if err != nil {
		return nil, err
	}
	exchange.DecrementBids()
	if err := h.c.saveExchange(db, exchange); err != nil {
		return nil, err
	}
	return &voucherx.DeliverResult{}, nil
}

func (h RefundBidHandler) validate(ctx voucherx.Context, db voucherx.KVStore, tx voucherx.Tx) (*Bid, error) {
	var msg RefundBidMsg
	if err := voucherx.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	var bid Bid
	if err := h.c.bids.One(db, bidKey(msg.Bidder, msg.AssetID), &bid); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, bid.Bidder) {
		return nil, errors.Wrap(ErrNotBidder, "bidder not signed")
	}
	if !bid.RequiresRefund {
		return nil, errors.Wrap(ErrBidNotRequiresRefund, "not marked for refund")
	}
	if !bid.Active {
		return nil, ErrBidNotActive
	}
	return &bid, nil
}
