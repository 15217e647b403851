package cash

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/coin"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/orm"
)

// CoinMover is the interface used by other extensions that need to move
// funds between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to the
	// destination account. Fails if the source has insufficient funds.
	MoveCoins(store voucherx.KVStore, src voucherx.Address, dest voucherx.Address, amount coin.Coin) error
}

// CoinMinter is implemented to allow issuing new coins out of thin air.
type CoinMinter interface {
	// IssueCoins increases the number of coins in an account. The amount
	// may be negative to remove funds.
	IssueCoins(store voucherx.KVStore, dest voucherx.Address, amount coin.Coin) error
}

// Controller is the functionality needed by the handlers and by other
// extensions that settle payments.
type Controller interface {
	CoinMover
	CoinMinter

	// Balance returns the coins held by an account. Missing accounts are
	// reported as ErrEmpty.
	Balance(store voucherx.KVStore, src voucherx.Address) (coin.Coins, error)
}

// CashController implements Controller on top of a wallet bucket.
type CashController struct {
	bucket orm.ModelBucket
}

var _ Controller = CashController{}

// NewController returns a controller using the given bucket to store wallet
// state.
func NewController(bucket orm.ModelBucket) CashController {
	return CashController{bucket: bucket}
}

// Balance returns the amount of funds stored under the given account address.
func (c CashController) Balance(store voucherx.KVStore, src voucherx.Address) (coin.Coins, error) {
	var wallet Wallet
	if err := c.bucket.One(store, src, &wallet); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(errors.ErrEmpty, "account %s", src)
		}
		return nil, errors.Wrap(err, "cannot get wallet")
	}
	return wallet.Coins, nil
}

// MoveCoins moves the given amount from src to dest. If src doesn't exist,
// or doesn't have sufficient coins, it fails.
func (c CashController) MoveCoins(store voucherx.KVStore, src voucherx.Address, dest voucherx.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer %s", amount)
	}

	var sender Wallet
	if err := c.bucket.One(store, src, &sender); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrapf(errors.ErrEmpty, "account %s", src)
		}
		return errors.Wrap(err, "cannot get sender")
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds in %s", src)
	}

	var recipient Wallet
	if err := c.bucket.One(store, dest, &recipient); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "cannot get recipient")
	}

	updatedSender, err := sender.Coins.Subtract(amount)
	if err != nil {
		return err
	}
	updatedRecipient, err := recipient.Coins.Add(amount)
	if err != nil {
		return err
	}

	sender.Coins = updatedSender
	recipient.Coins = updatedRecipient
	if err := c.bucket.Put(store, src, &sender); err != nil {
		return errors.Wrap(err, "cannot store sender")
	}
	if err := c.bucket.Put(store, dest, &recipient); err != nil {
		return errors.Wrap(err, "cannot store recipient")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to the destination
// address. Fails if it overflows the wallet.
func (c CashController) IssueCoins(store voucherx.KVStore, dest voucherx.Address, amount coin.Coin) error {
	var recipient Wallet
	if err := c.bucket.One(store, dest, &recipient); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "cannot get recipient")
	}
	updated, err := recipient.Coins.Add(amount)
	if err != nil {
		return err
	}
	recipient.Coins = updated
	return c.bucket.Put(store, dest, &recipient)
}
