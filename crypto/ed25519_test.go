package crypto

import (
	"bytes"
	"testing"
)

func TestSignAndVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()

	msg := []byte("some message to ratify")
	sig, err := priv.Sign(msg)
	if err != nil {
		t.Fatalf("cannot sign: %+v", err)
	}
	if !pub.Verify(msg, sig) {
		t.Fatal("signature did not verify")
	}
	if pub.Verify([]byte("some other message"), sig) {
		t.Fatal("signature verified wrong message")
	}

	priv2 := GenPrivKeyEd25519()
	if priv2.PublicKey().Verify(msg, sig) {
		t.Fatal("signature verified under wrong key")
	}
}

func TestDeterministicFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	if !bytes.Equal(a.Ed25519, b.Ed25519) {
		t.Fatal("seeded keys differ")
	}
	if !a.PublicKey().Condition().Equals(b.PublicKey().Condition()) {
		t.Fatal("seeded conditions differ")
	}
}

func TestConditionShape(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	cond := pub.Condition()
	if err := cond.Validate(); err != nil {
		t.Fatalf("invalid condition: %+v", err)
	}
	ext, typ, data, err := cond.Parse()
	if err != nil {
		t.Fatalf("cannot parse condition: %+v", err)
	}
	if ext != ExtensionName || typ != "ed25519" {
		t.Fatalf("unexpected condition parts: %s/%s", ext, typ)
	}
	if !bytes.Equal(data, pub.Ed25519) {
		t.Fatal("condition does not carry the public key")
	}
	if err := pub.Address().Validate(); err != nil {
		t.Fatalf("invalid address: %+v", err)
	}
}
