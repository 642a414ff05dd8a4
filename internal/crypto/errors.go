package crypto

import "errors"

var (
	// ErrSignatureInvalid reports a signature that does not verify, or key or
	// signature material of the wrong size.
	ErrSignatureInvalid = errors.New("crypto: signature verification failed")

	// ErrAuthentication reports sealed data that failed to authenticate,
	// including truncated input. No partial plaintext is ever returned.
	ErrAuthentication = errors.New("crypto: message authentication failed")
)
