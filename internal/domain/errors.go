package domain

import "errors"

// Shared sentinel errors. Callers match these with errors.Is; the packages
// that raise them wrap additional context around the sentinel.
var (
	// ErrUnknownSender reports a Send from a client id that never registered.
	ErrUnknownSender = errors.New("unknown sender")

	// ErrUnknownRecipient reports a peer with no agreement key on record.
	ErrUnknownRecipient = errors.New("unknown recipient")

	// ErrNoMessages reports an empty mailbox. It is an expected condition,
	// not a failure.
	ErrNoMessages = errors.New("no messages queued")

	// ErrStorage reports that persisting server state failed. After it the
	// in-memory and on-disk views may have diverged.
	ErrStorage = errors.New("storage failure")
)
