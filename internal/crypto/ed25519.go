package crypto

import "crypto/ed25519"

// Sign returns the Ed25519 signature over msg with this identity's signing
// key.
func (id *Identity) Sign(msg []byte) []byte {
	return ed25519.Sign(id.signPriv, msg)
}

// Verify checks sig over msg against the given verification key. Wrong-size
// key or signature material and any mismatch all return ErrSignatureInvalid.
func Verify(pub, msg, sig []byte) error {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return ErrSignatureInvalid
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), msg, sig) {
		return ErrSignatureInvalid
	}
	return nil
}
