package cash

import (
	"context"
	"testing"

	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/coin"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/store"
	"github.com/vx-one/voucherx/voucherxtest"
	"github.com/vx-one/voucherx/voucherxtest/assert"
)

func TestSendHandler(t *testing.T) {
	var (
		alice = voucherxtest.NewCondition()
		bob   = voucherxtest.NewCondition()
	)

	cases := map[string]struct {
		signer  voucherx.Condition
		msg     *SendMsg
		wantErr *errors.Error
	}{
		"transfer authorized by the source": {
			signer: alice,
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoin(90, "VCH"),
				Memo:        "cab fare",
			},
		},
		"signed by the destination only": {
			signer: bob,
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoin(90, "VCH"),
			},
			wantErr: errors.ErrUnauthorized,
		},
		"zero amount": {
			signer: alice,
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoin(0, "VCH"),
			},
			wantErr: errors.ErrAmount,
		},
		"more than the wallet holds": {
			signer: alice,
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoin(10000, "VCH"),
			},
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			control := NewController(NewBucket())
			assert.Nil(t, control.IssueCoins(db, alice.Address(), coin.NewCoin(100, "VCH")))

			auth := &voucherxtest.Auth{Signer: tc.signer}
			h := NewSendHandler(auth, control)
			tx := &voucherxtest.Tx{Msg: tc.msg}
			ctx := context.Background()

			// Balance is only inspected during deliver, so check must
			// accept any well formed and authorized message.
			if res, err := h.Check(ctx, db, tx); err == nil && res.GasAllocated != sendTxCost {
				t.Fatalf("unexpected gas: %d", res.GasAllocated)
			}

			_, err := h.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("deliver: want %q, got %+v", tc.wantErr, err)
				}
				return
			}
			assert.Nil(t, err)

			got, err := control.Balance(db, bob.Address())
			assert.Nil(t, err)
			assert.Equal(t, coin.Coins{coin.NewCoinp(90, "VCH")}, got)
		})
	}
}
