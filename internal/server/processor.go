package server

import (
	"encoding/hex"
	"fmt"
	"time"

	"courier/internal/crypto"
	"courier/internal/domain"
	"courier/internal/observability/metrics"
	"courier/internal/protocol"
)

// Processor applies commands to the store, one response per command. It holds
// no per-request state, so any number of connection handlers may share one.
type Processor struct {
	identity *crypto.Identity
	store    domain.Store
}

// NewProcessor builds a Processor around the server identity and store.
func NewProcessor(identity *crypto.Identity, store domain.Store) *Processor {
	return &Processor{identity: identity, store: store}
}

// Process validates cmd and applies its state transition. Command-level
// failures, such as an unknown sender, a bad signature, or an empty mailbox,
// come back as an Error response with a nil error. A non-nil error is
// returned only when persisting state failed and wraps domain.ErrStorage.
func (p *Processor) Process(cmd protocol.Command) (protocol.Response, error) {
	switch c := cmd.(type) {
	case protocol.Register:
		return p.register(c)
	case protocol.Send:
		return p.send(c)
	case protocol.GetMessages:
		return p.getMessages(c), nil
	case protocol.GetClients:
		return protocol.ClientList{Clients: p.store.AllClients()}, nil
	case protocol.Heartbeat:
		return p.heartbeat(c)
	default:
		return protocol.Error{Message: fmt.Sprintf("unsupported command %s", protocol.CommandName(cmd))}, nil
	}
}

func (p *Processor) register(c protocol.Register) (protocol.Response, error) {
	key, err := hex.DecodeString(c.PublicKey)
	if err != nil || len(key) != crypto.PublicKeySize {
		return protocol.Error{Message: fmt.Sprintf(
			"invalid public key for %s: want %d hex-encoded bytes", c.ClientID, crypto.PublicKeySize)}, nil
	}
	if err := p.store.RegisterClient(c.ClientID, key); err != nil {
		return nil, err
	}
	metrics.ClientsRegisteredTotal.Inc()
	return protocol.Registered{
		ServerPublicKey: hex.EncodeToString(p.identity.SigningPublic()),
	}, nil
}

func (p *Processor) send(c protocol.Send) (protocol.Response, error) {
	sender, ok := p.store.Client(c.SenderID)
	if !ok {
		return protocol.Error{Message: fmt.Sprintf("Unknown sender: %s", c.SenderID)}, nil
	}

	sig, err := hex.DecodeString(c.Signature)
	if err != nil {
		return protocol.Error{Message: "signature is not valid hex"}, nil
	}
	// The signature covers the hex string exactly as it crossed the wire,
	// not the decoded ciphertext.
	if err := crypto.Verify(sender.PublicKey, []byte(c.EncryptedContent), sig); err != nil {
		return protocol.Error{Message: fmt.Sprintf("signature verification failed for %s", c.SenderID)}, nil
	}

	content, err := hex.DecodeString(c.EncryptedContent)
	if err != nil {
		return protocol.Error{Message: "encrypted content is not valid hex"}, nil
	}

	msg := domain.Message{
		ID:          c.MessageID,
		SenderID:    c.SenderID,
		RecipientID: c.RecipientID,
		Content:     content,
		Timestamp:   time.Now().UTC(),
		Encrypted:   true,
		Signature:   sig,
	}
	if err := p.store.AddMessage(msg); err != nil {
		return nil, err
	}
	if err := p.store.UpdateLastSeen(c.SenderID); err != nil {
		return nil, err
	}

	metrics.MessagesStoredTotal.Inc()
	metrics.MessageCiphertextBytes.Observe(float64(len(content)))
	return protocol.MessageSent{MessageID: c.MessageID}, nil
}

func (p *Processor) getMessages(c protocol.GetMessages) protocol.Response {
	queue := p.store.MessagesFor(c.ClientID)
	if len(queue) == 0 {
		return protocol.Error{Message: "No messages found"}
	}
	// Only the most recent message is handed out; earlier entries stay
	// queued on disk.
	return protocol.MessageReceived{Message: queue[len(queue)-1]}
}

func (p *Processor) heartbeat(c protocol.Heartbeat) (protocol.Response, error) {
	if err := p.store.UpdateLastSeen(c.ClientID); err != nil {
		return nil, err
	}
	return protocol.Ok{}, nil
}
