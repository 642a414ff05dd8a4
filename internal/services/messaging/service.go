package messaging

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"courier/internal/crypto"
	"courier/internal/domain"
	"courier/internal/services/contacts"
	"courier/internal/util/memzero"
)

// Service seals, signs, sends and receives messages for one identity.
type Service struct {
	identity *crypto.Identity
	book     *contacts.Book
	relay    domain.RelayClient
}

// New constructs a messaging Service.
func New(identity *crypto.Identity, book *contacts.Book, relay domain.RelayClient) *Service {
	return &Service{identity: identity, book: book, relay: relay}
}

// Register announces from and our signing key to the relay and returns the
// server's verification key.
func (s *Service) Register(ctx context.Context, from string) ([]byte, error) {
	return s.relay.Register(ctx, from, s.identity.SigningPublic())
}

// Send seals plaintext for the peer, signs the hex-encoded ciphertext, and
// relays it. The returned id is the server-confirmed message id.
func (s *Service) Send(ctx context.Context, from, to string, plaintext []byte) (string, error) {
	peerKey, err := s.book.Key(to)
	if err != nil {
		return "", err
	}
	key, err := s.identity.SharedKey(peerKey)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(key)

	sealed, err := s.identity.Seal(key, plaintext)
	if err != nil {
		return "", err
	}

	contentHex := hex.EncodeToString(sealed)
	// Both ends sign and verify the hex string bytes, not the raw ciphertext.
	signature := s.identity.Sign([]byte(contentHex))

	return s.relay.SendMessage(ctx, domain.Outbound{
		SenderID:    from,
		RecipientID: to,
		Content:     contentHex,
		Signature:   hex.EncodeToString(signature),
		MessageID:   uuid.NewString(),
	})
}

// Receive fetches the most recently queued message for me and opens it with
// the sender's key from the contact book. domain.ErrNoMessages means an
// empty mailbox, not a failure.
func (s *Service) Receive(ctx context.Context, me string) (domain.IncomingMessage, error) {
	msg, err := s.relay.FetchLatest(ctx, me)
	if err != nil {
		return domain.IncomingMessage{}, err
	}

	peerKey, err := s.book.Key(msg.SenderID)
	if err != nil {
		return domain.IncomingMessage{}, fmt.Errorf("cannot decrypt message %s: %w", msg.ID, err)
	}
	key, err := s.identity.SharedKey(peerKey)
	if err != nil {
		return domain.IncomingMessage{}, err
	}
	defer memzero.Zero(key)

	plaintext, err := crypto.Open(key, msg.Content)
	if err != nil {
		return domain.IncomingMessage{}, fmt.Errorf("message %s from %s: %w", msg.ID, msg.SenderID, err)
	}

	return domain.IncomingMessage{
		ID:        msg.ID,
		From:      msg.SenderID,
		Plaintext: plaintext,
		SentAt:    msg.Timestamp,
		Signed:    len(msg.Signature) > 0,
	}, nil
}

// Contacts returns the ids registered on the relay.
func (s *Service) Contacts(ctx context.Context) ([]string, error) {
	return s.relay.ListClients(ctx)
}

// Heartbeat refreshes me's last-seen timestamp on the relay.
func (s *Service) Heartbeat(ctx context.Context, me string) error {
	return s.relay.Heartbeat(ctx, me)
}
