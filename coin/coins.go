package coin

import (
	"sort"
	"strings"

	"github.com/vx-one/voucherx/errors"
)

// Coins represents a set of coins. Most operations assume the set is
// normalized: sorted by ticker, no duplicates, no zero values.
type Coins []*Coin

// CombineCoins creates a sorted Coins set out of the given coins. Duplicate
// tickers are merged, zero values dropped.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	var err error
	for _, c := range cs {
		res, err = res.Add(c)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Clone returns a copy containing independent copies of all coins.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add modifies the set, returning a new set with the given coin merged in.
// The original set is not mutated. Zero results are removed from the set.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	if !IsCC(c.Ticker) {
		return nil, errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", c.Ticker)
	}

	res := cs.Clone()
	for i, have := range res {
		if !have.SameType(c) {
			continue
		}
		sum, err := have.Add(c)
		if err != nil {
			return nil, err
		}
		if sum.IsZero() {
			return append(res[:i], res[i+1:]...), nil
		}
		res[i] = &sum
		return res, nil
	}

	res = append(res, &c)
	sort.Slice(res, func(i, j int) bool {
		return res[i].Ticker < res[j].Ticker
	})
	return res, nil
}

// Subtract modifies the set, returning a new set with the given coin
// removed. The result may contain negative amounts.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Combine adds all given coins to this set.
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs.Clone()
	var err error
	for _, c := range o {
		res, err = res.Add(*c)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Coin returns the coin with the given ticker from the set, or a zero coin
// of that ticker if not present.
func (cs Coins) Coin(ticker string) Coin {
	for _, c := range cs {
		if c.Ticker == ticker {
			return *c
		}
	}
	return Coin{Ticker: ticker}
}

// Contains returns true if there is at least that much coin in the set.
func (cs Coins) Contains(c Coin) bool {
	return cs.Coin(c.Ticker).IsGTE(c)
}

// IsPositive returns true if every coin in the set has a positive amount.
// An empty set is not positive.
func (cs Coins) IsPositive() bool {
	if len(cs) == 0 {
		return false
	}
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

// IsNonNegative returns true if no coin in the set has a negative amount.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets contain the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate demands the set to be normalized: sorted by ticker, unique, no
// zero values, and every coin valid.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrap(errors.ErrAmount, "zero coin in the set")
		}
		if c.Ticker <= last {
			return errors.Wrap(errors.ErrState, "coins not sorted by ticker")
		}
		last = c.Ticker
	}
	return nil
}

// String provides a human readable representation of the set.
func (cs Coins) String() string {
	if len(cs) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
