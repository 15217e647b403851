package custody

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/coin"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/orm"
	"github.com/vx-one/voucherx/x/cash"
	"github.com/vx-one/voucherx/x/voucher"
)

// Ledger opens, funds and drains custody accounts. Deposits are open to
// anyone; withdrawals and close require the full derivation.
type Ledger struct {
	bucket   orm.ModelBucket
	cash     cash.Controller
	vouchers voucher.Mover
}

// NewLedger returns a ledger moving funds through the given cash controller
// and vouchers through the given mover.
func NewLedger(cashCtrl cash.Controller, vouchers voucher.Mover) Ledger {
	return Ledger{
		bucket:   NewBucket(),
		cash:     cashCtrl,
		vouchers: vouchers,
	}
}

// Open discovers a free nonce for the derivation, stores the account record
// and returns the derived address together with the nonce. The nonce must
// be kept by the caller to authorize later withdrawals.
func (l Ledger) Open(db voucherx.KVStore, tag string, seeds [][]byte, beneficiary voucherx.Address) (voucherx.Address, uint8, error) {
	nonce, addr, err := l.findNonce(db, tag, seeds)
	if err != nil {
		return nil, 0, err
	}
	acct := Account{
		Tag:         tag,
		Nonce:       nonce,
		Beneficiary: beneficiary.Clone(),
	}
	if err := l.bucket.Put(db, addr, &acct); err != nil {
		return nil, 0, errors.Wrap(err, "cannot store custody account")
	}
	return addr, nonce, nil
}

// findNonce walks nonce values from the highest down and returns the first
// whose derived address is not occupied by a live account.
func (l Ledger) findNonce(db voucherx.KVStore, tag string, seeds [][]byte) (uint8, voucherx.Address, error) {
	for nonce := 255; nonce >= 0; nonce-- {
		addr := Derive(tag, seeds, uint8(nonce)).Address()
		switch taken, err := l.bucket.Has(db, addr); {
		case err != nil:
			return 0, nil, err
		case !taken:
			return uint8(nonce), addr, nil
		}
	}
	return 0, nil, errors.Wrapf(ErrNoFreeNonce, "tag %q", tag)
}

// Deposit moves funds from source into the custody account.
func (l Ledger) Deposit(db voucherx.KVStore, src voucherx.Address, acct voucherx.Address, amount coin.Coin) error {
	if ok, err := l.bucket.Has(db, acct); err != nil {
		return err
	} else if !ok {
		return errors.Wrapf(errors.ErrNotFound, "custody account %s", acct)
	}
	return l.cash.MoveCoins(db, src, acct, amount)
}

// DepositVoucher parks a voucher in the custody account.
func (l Ledger) DepositVoucher(db voucherx.KVStore, id []byte, src voucherx.Address, acct voucherx.Address) error {
	if ok, err := l.bucket.Has(db, acct); err != nil {
		return err
	} else if !ok {
		return errors.Wrapf(errors.ErrNotFound, "custody account %s", acct)
	}
	return l.vouchers.Transfer(db, id, src, acct)
}

// Withdraw moves funds out of the custody account to the destination. The
// presented derivation must re-derive to the account address.
func (l Ledger) Withdraw(db voucherx.KVStore, authority Authority, dest voucherx.Address, amount coin.Coin) error {
	acct, err := l.authorize(db, authority)
	if err != nil {
		return err
	}
	return l.cash.MoveCoins(db, acct, dest, amount)
}

// WithdrawVoucher releases a voucher from the custody account to the
// destination.
func (l Ledger) WithdrawVoucher(db voucherx.KVStore, authority Authority, id []byte, dest voucherx.Address) error {
	acct, err := l.authorize(db, authority)
	if err != nil {
		return err
	}
	return l.vouchers.Transfer(db, id, acct, dest)
}

// Close deletes the custody account and pays any residual balance to the
// beneficiary recorded at open time.
func (l Ledger) Close(db voucherx.KVStore, authority Authority) error {
	acct, err := l.authorize(db, authority)
	if err != nil {
		return err
	}
	var rec Account
	if err := l.bucket.One(db, acct, &rec); err != nil {
		return err
	}
	residual, err := l.cash.Balance(db, acct)
	switch {
	case errors.ErrEmpty.Is(err):
		// Account never held funds.
	case err != nil:
		return err
	default:
		for _, c := range residual {
			if !c.IsPositive() {
				continue
			}
			if err := l.cash.MoveCoins(db, acct, rec.Beneficiary, *c); err != nil {
				return errors.Wrap(err, "cannot pay out residual")
			}
		}
	}
	return l.bucket.Delete(db, acct)
}

// authorize verifies the derivation against the stored account and returns
// the account address.
func (l Ledger) authorize(db voucherx.KVStore, authority Authority) (voucherx.Address, error) {
	if err := authority.Validate(); err != nil {
		return nil, err
	}
	acct := authority.Address()
	var rec Account
	if err := l.bucket.One(db, acct, &rec); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrInvalidAddress, "no account at %s", acct)
		}
		return nil, err
	}
	if rec.Tag != authority.Tag || rec.Nonce != authority.Nonce {
		return nil, errors.Wrapf(ErrInvalidAddress, "derivation mismatch at %s", acct)
	}
	return acct, nil
}
