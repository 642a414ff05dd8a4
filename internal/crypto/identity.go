package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"sync/atomic"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
)

// Key and envelope sizes shared by both ends of the protocol.
const (
	// KeySize is the byte length of a pairwise symmetric key.
	KeySize = chacha20poly1305.KeySize
	// NonceSize is the byte length of the nonce prefixed to sealed data.
	NonceSize = chacha20poly1305.NonceSize
	// PublicKeySize is the byte length of both public key kinds.
	PublicKeySize = 32
	// SignatureSize is the byte length of an Ed25519 signature.
	SignatureSize = ed25519.SignatureSize
)

// Identity carries the signing and agreement key pairs for one process run.
// Identities are ephemeral: generated at startup, never persisted, and
// discarded on exit. The two pairs are independent; the Ed25519 signing key
// is not converted for agreement.
type Identity struct {
	signPriv ed25519.PrivateKey
	signPub  ed25519.PublicKey
	dhPriv   [32]byte
	dhPub    [32]byte

	noncePrefix [4]byte
	nonceCount  atomic.Uint64
}

// NewIdentity generates a fresh identity from the system random source.
func NewIdentity() (*Identity, error) {
	signPub, signPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}

	id := &Identity{signPriv: signPriv, signPub: signPub}
	if _, err := io.ReadFull(rand.Reader, id.dhPriv[:]); err != nil {
		return nil, fmt.Errorf("generate agreement key: %w", err)
	}
	clamp(&id.dhPriv)
	pub, err := curve25519.X25519(id.dhPriv[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("derive agreement public key: %w", err)
	}
	copy(id.dhPub[:], pub)

	if _, err := io.ReadFull(rand.Reader, id.noncePrefix[:]); err != nil {
		return nil, fmt.Errorf("generate nonce prefix: %w", err)
	}
	return id, nil
}

// SigningPublic returns a copy of the Ed25519 verification key.
func (id *Identity) SigningPublic() []byte {
	out := make([]byte, len(id.signPub))
	copy(out, id.signPub)
	return out
}

// AgreementPublic returns the X25519 public share to hand to peers.
func (id *Identity) AgreementPublic() [32]byte { return id.dhPub }

// clamp applies the RFC 7748 scalar masking in place.
func clamp(k *[32]byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
