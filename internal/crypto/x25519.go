package crypto

import (
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// SharedKey derives the pairwise symmetric key from this identity's agreement
// secret and the peer's public share. Both directions of a pair derive the
// same key, so either side can seal for the other. The caller owns the
// returned slice and should wipe it after use.
func (id *Identity) SharedKey(peerPub [32]byte) ([]byte, error) {
	secret, err := curve25519.X25519(id.dhPriv[:], peerPub[:])
	if err != nil {
		return nil, fmt.Errorf("derive shared key: %w", err)
	}
	return secret, nil
}
