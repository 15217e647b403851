package voucherx_test

import (
	"encoding/json"
	"fmt"
	"testing"

	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/crypto/bech32"
	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/voucherxtest/assert"
)

func TestConditionParse(t *testing.T) {
	cond := voucherx.NewCondition("custody", "listing", []byte("somedata"))

	ext, typ, data, err := cond.Parse()
	assert.Nil(t, err)
	assert.Equal(t, "custody", ext)
	assert.Equal(t, "listing", typ)
	assert.Equal(t, []byte("somedata"), data)
}

func TestConditionParseInvalid(t *testing.T) {
	cases := map[string]voucherx.Condition{
		"empty":             voucherx.Condition(""),
		"missing sections":  voucherx.Condition("onlyext"),
		"short extension":   voucherx.NewCondition("ab", "listing", []byte("data")),
		"no data":           voucherx.Condition("custody/listing/"),
		"invalid character": voucherx.NewCondition("cus!tody", "listing", []byte("data")),
	}
	for testName, cond := range cases {
		t.Run(testName, func(t *testing.T) {
			if _, _, _, err := cond.Parse(); !errors.ErrInput.Is(err) {
				t.Fatalf("want input error, got %+v", err)
			}
			if err := cond.Validate(); !errors.ErrInput.Is(err) {
				t.Fatalf("want input error, got %+v", err)
			}
		})
	}
}

func TestConditionAddress(t *testing.T) {
	a := voucherx.NewCondition("custody", "listing", []byte("one"))
	b := voucherx.NewCondition("custody", "listing", []byte("two"))

	assert.Nil(t, a.Address().Validate())
	assert.Equal(t, voucherx.AddressLength, len(a.Address()))

	// Different data, different address. Same input, same address.
	assert.Equal(t, false, a.Address().Equals(b.Address()))
	assert.Equal(t, true, a.Address().Equals(a.Address()))
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr voucherx.Address
	}{
		"default decoding": {
			json:     `"6865782d61646472"`,
			wantAddr: voucherx.Address("hex-addr"),
		},
		"hex decoding": {
			json:     `"hex:6865782d61646472"`,
			wantAddr: voucherx.Address("hex-addr"),
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: voucherx.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a voucherx.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !a.Equals(tc.wantAddr) {
				t.Fatalf("got address: %q (want %q)", a, tc.wantAddr)
			}
		})
	}
}

func TestAddressUnmarshalBech32(t *testing.T) {
	addr := voucherx.NewCondition("custody", "listing", []byte("bech32")).Address()
	enc, err := bech32.Encode("voucher", addr)
	assert.Nil(t, err)

	var got voucherx.Address
	assert.Nil(t, json.Unmarshal([]byte(fmt.Sprintf(`"bech32:%s"`, enc)), &got))
	assert.Equal(t, addr, got)
}

func TestAddressMarshalJSONRoundTrip(t *testing.T) {
	addr := voucherx.NewCondition("custody", "listing", []byte("roundtrip")).Address()

	raw, err := json.Marshal(addr)
	assert.Nil(t, err)

	var got voucherx.Address
	assert.Nil(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantCond voucherx.Condition
	}{
		"valid condition": {
			json:     `"foo/bar/636f6e646974696f6e64617461"`,
			wantCond: voucherx.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"zero condition": {
			json:     `""`,
			wantCond: nil,
		},
		"missing data": {
			json:    `"foo/bar"`,
			wantErr: errors.ErrInput,
		},
		"not hex data": {
			json:    `"foo/bar/zzzz"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var c voucherx.Condition
			err := json.Unmarshal([]byte(tc.json), &c)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !c.Equals(tc.wantCond) {
				t.Fatalf("got condition: %q (want %q)", c, tc.wantCond)
			}
		})
	}
}
