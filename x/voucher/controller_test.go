package voucher

import (
	"bytes"
	"testing"

	"github.com/vx-one/voucherx/errors"
	"github.com/vx-one/voucherx/store"
	"github.com/vx-one/voucherx/voucherxtest"
	"github.com/vx-one/voucherx/voucherxtest/assert"
)

func voucherID(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, IDLength)
}

func TestIssueAndTransfer(t *testing.T) {
	var (
		alice = voucherxtest.NewCondition().Address()
		bob   = voucherxtest.NewCondition().Address()
		id    = voucherID(1)
	)

	db := store.MemStore()
	control := NewController(NewBucket())

	assert.Nil(t, control.Issue(db, id, alice))

	if err := control.Issue(db, id, bob); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate, got %+v", err)
	}

	holder, err := control.HolderOf(db, id)
	assert.Nil(t, err)
	assert.Equal(t, alice, holder)

	// Someone that does not hold the voucher cannot give it away.
	if err := control.Transfer(db, id, bob, alice); !ErrNotHolder.Is(err) {
		t.Fatalf("want not holder, got %+v", err)
	}

	assert.Nil(t, control.Transfer(db, id, alice, bob))

	holder, err = control.HolderOf(db, id)
	assert.Nil(t, err)
	assert.Equal(t, bob, holder)
}

func TestUnknownVoucher(t *testing.T) {
	db := store.MemStore()
	control := NewController(NewBucket())

	if _, err := control.HolderOf(db, voucherID(9)); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestTokenSerialization(t *testing.T) {
	token := Token{
		ID:     voucherID(7),
		Holder: voucherxtest.NewCondition().Address(),
	}
	raw, err := token.Marshal()
	assert.Nil(t, err)

	var loaded Token
	assert.Nil(t, loaded.Unmarshal(raw))
	assert.Equal(t, &token, &loaded)

	if err := loaded.Unmarshal(raw[:10]); !errors.ErrInput.Is(err) {
		t.Fatalf("want size error, got %+v", err)
	}
}
