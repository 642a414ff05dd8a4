package crypto

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Seal encrypts plaintext under key and returns nonce || ciphertext+tag.
// Nonces are a per-identity random prefix plus a 64-bit big-endian counter,
// so a key shared by one pair of identities never sees a repeated nonce
// within either process lifetime.
func (id *Identity) Seal(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}
	nonce := id.nextNonce()
	out := make([]byte, NonceSize, NonceSize+len(plaintext)+aead.Overhead())
	copy(out, nonce[:])
	return aead.Seal(out, nonce[:], plaintext, nil), nil
}

// Open decrypts data produced by Seal. Truncated input and any tag mismatch
// return ErrAuthentication.
func Open(key, data []byte) ([]byte, error) {
	if len(data) < NonceSize {
		return nil, ErrAuthentication
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	plaintext, err := aead.Open(nil, data[:NonceSize], data[NonceSize:], nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func (id *Identity) nextNonce() [NonceSize]byte {
	var n [NonceSize]byte
	copy(n[:4], id.noncePrefix[:])
	binary.BigEndian.PutUint64(n[4:], id.nonceCount.Add(1))
	return n
}
