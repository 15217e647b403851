package crypto

import (
	voucherx "github.com/vx-one/voucherx"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used in the condition building.
const ExtensionName = "sigs"

// PublicKey wraps raw ed25519 public key material.
type PublicKey struct {
	Ed25519 []byte
}

// Verify verifies the signature was created with this message and public
// key.
func (p *PublicKey) Verify(message []byte, sig []byte) bool {
	publicKey := ed25519.PublicKey(p.Ed25519)
	return ed25519.Verify(publicKey, message, sig)
}

// Condition encodes the public key into a voucherx condition.
func (p *PublicKey) Condition() voucherx.Condition {
	return voucherx.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address is a shortcut for Condition().Address().
func (p *PublicKey) Address() voucherx.Address {
	return p.Condition().Address()
}

// PrivateKey wraps raw ed25519 private key material.
type PrivateKey struct {
	Ed25519 []byte
}

// Signer can sign a message and reveal its public key.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() *PublicKey
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key.
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	return ed25519.Sign(privateKey, message), nil
}

// PublicKey returns the corresponding PublicKey.
func (p *PrivateKey) PublicKey() *PublicKey {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	pub := privateKey.Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness, or
// for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}
