package exchange

import (
	"bytes"
	"testing"

	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/coin"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/voucherxtest"
	"github.com/vx-one/voucherx/voucherxtest/assert"
)

func TestRecordEncoding(t *testing.T) {
	var (
		addr    = voucherxtest.NewCondition().Address()
		assetID = bytes.Repeat([]byte{8}, assetIDLength)
	)

	exchange := &Exchange{
		Authority:       addr,
		FeeBasisPoints:  250,
		FeeDestination:  voucherxtest.NewCondition().Address(),
		TotalListings:   3,
		TotalBids:       7,
		DerivationNonce: 254,
	}
	listing := &Listing{
		Owner:          addr,
		AssetID:        assetID,
		CustodyAccount: voucherxtest.NewCondition().Address(),
		Price:          coin.NewCoin(1000, "VCH"),
		Active:         true,
		CustodyNonce:   255,
	}
	bid := &Bid{
		Bidder:         addr,
		AssetID:        assetID,
		Price:          coin.NewCoin(600, "IOV"),
		CustodyAccount: voucherxtest.NewCondition().Address(),
		Active:         true,
		RequiresRefund: true,
		CustodyNonce:   253,
	}
	sale := &SaleRecord{
		AssetID:      assetID,
		Sold:         true,
		LastSaleTime: voucherx.UnixTime(123456789),
	}

	cases := map[string]struct {
		model    interface{ Marshal() ([]byte, error) }
		loaded   interface{ Unmarshal([]byte) error }
		wantSize int
	}{
		"exchange": {model: exchange, loaded: &Exchange{}, wantSize: exchangeSize},
		"listing":  {model: listing, loaded: &Listing{}, wantSize: listingSize},
		"bid":      {model: bid, loaded: &Bid{}, wantSize: bidSize},
		"sale":     {model: sale, loaded: &SaleRecord{}, wantSize: saleSize},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := tc.model.Marshal()
			assert.Nil(t, err)
			// Fixed width means every record of a kind has the same
			// byte size.
			assert.Equal(t, tc.wantSize, len(raw))

			assert.Nil(t, tc.loaded.Unmarshal(raw))
			assert.Equal(t, tc.model, tc.loaded)

			if err := tc.loaded.Unmarshal(raw[:len(raw)-1]); !errors.ErrInput.Is(err) {
				t.Fatalf("want size error, got %+v", err)
			}
			bad := append([]byte(nil), raw...)
			bad[0] = 99
			if err := tc.loaded.Unmarshal(bad); !errors.ErrType.Is(err) {
				t.Fatalf("want schema error, got %+v", err)
			}
		})
	}
}

func TestDerivedKeysDifferByParty(t *testing.T) {
	var (
		alice   = voucherxtest.NewCondition().Address()
		bob     = voucherxtest.NewCondition().Address()
		assetID = bytes.Repeat([]byte{2}, assetIDLength)
	)

	if bytes.Equal(listingKey(alice, assetID), listingKey(bob, assetID)) {
		t.Fatal("listing keys must differ per owner")
	}
	if bytes.Equal(bidKey(alice, assetID), bidKey(bob, assetID)) {
		t.Fatal("bid keys must differ per bidder")
	}
	// Listings and bids of the same pair live in different key spaces.
	if bytes.Equal(listingKey(alice, assetID), bidKey(alice, assetID)) {
		t.Fatal("listing and bid keys must not collide")
	}
	// The same pair always derives the same key.
	if !bytes.Equal(listingKey(alice, assetID), listingKey(alice, assetID)) {
		t.Fatal("listing key is not deterministic")
	}
}
