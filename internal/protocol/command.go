package protocol

import (
	"encoding/json"
	"fmt"
)

// Command is the closed set of client-to-server requests.
type Command interface{ isCommand() }

// Register announces a client id and its Ed25519 verification key as
// lowercase hex. Re-registering an id overwrites the previous record.
type Register struct {
	ClientID  string `json:"client_id"`
	PublicKey string `json:"public_key"`
}

// Send relays one sealed message. Signature is the sender's Ed25519 signature
// over the byte content of the EncryptedContent hex string, not over the
// decoded ciphertext.
type Send struct {
	SenderID         string `json:"sender_id"`
	RecipientID      string `json:"recipient_id"`
	EncryptedContent string `json:"encrypted_content"`
	Signature        string `json:"signature"`
	MessageID        string `json:"message_id"`
}

// GetMessages asks for the most recently queued message for a client.
type GetMessages struct {
	ClientID string `json:"client_id"`
}

// GetClients asks for the ids of every registered client.
type GetClients struct{}

// Heartbeat refreshes a client's last-seen timestamp.
type Heartbeat struct {
	ClientID string `json:"client_id"`
}

func (Register) isCommand()    {}
func (Send) isCommand()        {}
func (GetMessages) isCommand() {}
func (GetClients) isCommand()  {}
func (Heartbeat) isCommand()   {}

const (
	tagRegister    = "Register"
	tagSend        = "Send"
	tagGetMessages = "GetMessages"
	tagGetClients  = "GetClients"
	tagHeartbeat   = "Heartbeat"
)

// CommandName returns the wire tag for cmd, for logs and metrics.
func CommandName(cmd Command) string {
	switch cmd.(type) {
	case Register:
		return tagRegister
	case Send:
		return tagSend
	case GetMessages:
		return tagGetMessages
	case GetClients:
		return tagGetClients
	case Heartbeat:
		return tagHeartbeat
	default:
		return fmt.Sprintf("%T", cmd)
	}
}

// EncodeCommand renders cmd as one JSON document.
func EncodeCommand(cmd Command) ([]byte, error) {
	switch c := cmd.(type) {
	case Register:
		return encodeTagged(tagRegister, c)
	case Send:
		return encodeTagged(tagSend, c)
	case GetMessages:
		return encodeTagged(tagGetMessages, c)
	case GetClients:
		return json.Marshal(tagGetClients)
	case Heartbeat:
		return encodeTagged(tagHeartbeat, c)
	default:
		return nil, fmt.Errorf("protocol: unsupported command type %T", cmd)
	}
}

// DecodeCommand parses one JSON document into a Command. Unknown tags,
// missing required fields, and unparseable input all wrap ErrMalformed.
func DecodeCommand(data []byte) (Command, error) {
	tag, payload, err := splitTagged(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagRegister:
		var c Register
		if err := decodeVariant(tag, payload, &c); err != nil {
			return nil, err
		}
		if c.ClientID == "" || c.PublicKey == "" {
			return nil, fmt.Errorf("%w: %s requires client_id and public_key", ErrMalformed, tag)
		}
		return c, nil
	case tagSend:
		var c Send
		if err := decodeVariant(tag, payload, &c); err != nil {
			return nil, err
		}
		if c.SenderID == "" || c.RecipientID == "" || c.MessageID == "" {
			return nil, fmt.Errorf("%w: %s requires sender_id, recipient_id and message_id", ErrMalformed, tag)
		}
		return c, nil
	case tagGetMessages:
		var c GetMessages
		if err := decodeVariant(tag, payload, &c); err != nil {
			return nil, err
		}
		if c.ClientID == "" {
			return nil, fmt.Errorf("%w: %s requires client_id", ErrMalformed, tag)
		}
		return c, nil
	case tagGetClients:
		return GetClients{}, nil
	case tagHeartbeat:
		var c Heartbeat
		if err := decodeVariant(tag, payload, &c); err != nil {
			return nil, err
		}
		if c.ClientID == "" {
			return nil, fmt.Errorf("%w: %s requires client_id", ErrMalformed, tag)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown command %q", ErrMalformed, tag)
	}
}
