package domain

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// HexBytes is a byte slice that crosses the wire and the disk as a lowercase
// hex string. A nil slice encodes as JSON null, matching records whose
// signature was never set.
type HexBytes []byte

// MarshalJSON implements json.Marshaler.
func (h HexBytes) MarshalJSON() ([]byte, error) {
	if h == nil {
		return []byte("null"), nil
	}
	return json.Marshal(hex.EncodeToString(h))
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *HexBytes) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("hex field: %w", err)
	}
	if s == nil {
		*h = nil
		return nil
	}
	raw, err := hex.DecodeString(*s)
	if err != nil {
		return fmt.Errorf("hex field: %w", err)
	}
	*h = raw
	return nil
}

// String renders the bytes as lowercase hex.
func (h HexBytes) String() string { return hex.EncodeToString(h) }

// Message is one relayed ciphertext as the server stores and forwards it.
// Content holds the sealed bytes; Signature is the sender's Ed25519 signature
// over the hex encoding of Content exactly as it crossed the wire.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     HexBytes  `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	Encrypted   bool      `json:"encrypted"`
	Signature   HexBytes  `json:"signature"`
}

// ClientRecord is the server's view of a registered client.
type ClientRecord struct {
	ID           string    `json:"id"`
	PublicKey    HexBytes  `json:"public_key"`
	RegisteredAt time.Time `json:"registered_at"`
	LastSeen     time.Time `json:"last_seen"`
}

// Outbound is a fully prepared Send payload: the hex-encoded ciphertext plus
// the signature over those hex bytes, both ready for the wire.
type Outbound struct {
	SenderID    string
	RecipientID string
	Content     string
	Signature   string
	MessageID   string
}

// IncomingMessage is a fetched message after client-side decryption.
type IncomingMessage struct {
	ID        string
	From      string
	Plaintext []byte
	SentAt    time.Time
	Signed    bool
}
