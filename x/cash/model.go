package cash

import (
	"encoding/binary"

	"github.com/vx-one/voucherx/coin"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/orm"
)

// BucketName is where we store the wallets.
const BucketName = "cash"

// walletSchema is the current serialization schema version.
const walletSchema = 1

// Wallet is a set of coins stored under an address.
type Wallet struct {
	Coins coin.Coins
}

var _ orm.Model = (*Wallet)(nil)

// Validate requires that all coins are sorted, unique and non-zero.
func (w *Wallet) Validate() error {
	return w.Coins.Validate()
}

// Copy makes a new wallet with the same coins.
func (w *Wallet) Copy() orm.Model {
	return &Wallet{Coins: w.Coins.Clone()}
}

// Marshal encodes the wallet as a schema byte, a coin count and a
// (ticker length, ticker, little endian int64 amount) triple per coin.
func (w *Wallet) Marshal() ([]byte, error) {
	if len(w.Coins) > 255 {
		return nil, errors.Wrap(errors.ErrModel, "too many coins")
	}
	raw := []byte{walletSchema, byte(len(w.Coins))}
	for _, c := range w.Coins {
		if len(c.Ticker) > 255 {
			return nil, errors.Wrap(errors.ErrModel, "ticker too long")
		}
		raw = append(raw, byte(len(c.Ticker)))
		raw = append(raw, c.Ticker...)
		var amount [8]byte
		binary.LittleEndian.PutUint64(amount[:], uint64(c.Amount))
		raw = append(raw, amount[:]...)
	}
	return raw, nil
}

func (w *Wallet) Unmarshal(raw []byte) error {
	if len(raw) < 2 {
		return errors.Wrap(errors.ErrInput, "truncated wallet")
	}
	if raw[0] != walletSchema {
		return errors.Wrapf(errors.ErrType, "unknown wallet schema %d", raw[0])
	}
	count := int(raw[1])
	raw = raw[2:]
	var cs coin.Coins
	for i := 0; i < count; i++ {
		if len(raw) < 1 {
			return errors.Wrap(errors.ErrInput, "truncated wallet")
		}
		tlen := int(raw[0])
		raw = raw[1:]
		if len(raw) < tlen+8 {
			return errors.Wrap(errors.ErrInput, "truncated wallet")
		}
		ticker := string(raw[:tlen])
		amount := int64(binary.LittleEndian.Uint64(raw[tlen : tlen+8]))
		raw = raw[tlen+8:]
		cs = append(cs, coin.NewCoinp(amount, ticker))
	}
	if len(raw) != 0 {
		return errors.Wrap(errors.ErrInput, "trailing wallet bytes")
	}
	w.Coins = cs
	return nil
}

// NewBucket returns a bucket for keeping wallets, keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName)
}
