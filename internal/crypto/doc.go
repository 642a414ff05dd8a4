// Package crypto implements courier's cryptographic core: per-process
// identities carrying an Ed25519 signing pair and an X25519 agreement pair,
// pairwise key derivation, and ChaCha20-Poly1305 sealing with counter nonces.
//
// The pairwise key is the raw X25519 shared secret used directly as the AEAD
// key; there is no KDF step and no ratcheting, so the key for a pair is fixed
// for the lifetime of both identities.
package crypto
