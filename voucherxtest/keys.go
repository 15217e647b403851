package voucherxtest

import (
	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/crypto"
)

func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

func NewCondition() voucherx.Condition {
	return NewKey().PublicKey().Condition()
}
