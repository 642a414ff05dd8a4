package protocol

import (
	"encoding/json"
	"fmt"

	"courier/internal/domain"
)

// Response is the closed set of server-to-client replies.
type Response interface{ isResponse() }

// Registered acknowledges a Register and carries the server's own Ed25519
// verification key as lowercase hex.
type Registered struct {
	ServerPublicKey string `json:"server_public_key"`
}

// MessageSent acknowledges a Send with the stored message's id.
type MessageSent struct {
	MessageID string `json:"message_id"`
}

// MessageReceived carries the most recently queued message for the caller.
type MessageReceived struct {
	Message domain.Message `json:"message"`
}

// ClientList carries the ids of every registered client.
type ClientList struct {
	Clients []string `json:"clients"`
}

// Error reports a command-level failure. The session stays open; the client
// decides whether to retry.
type Error struct {
	Message string `json:"message"`
}

// Ok acknowledges a command with nothing to report, currently only Heartbeat.
type Ok struct{}

func (Registered) isResponse()      {}
func (MessageSent) isResponse()     {}
func (MessageReceived) isResponse() {}
func (ClientList) isResponse()      {}
func (Error) isResponse()           {}
func (Ok) isResponse()              {}

const (
	tagRegistered      = "Registered"
	tagMessageSent     = "MessageSent"
	tagMessageReceived = "MessageReceived"
	tagClientList      = "ClientList"
	tagError           = "Error"
	tagOk              = "Ok"
)

// EncodeResponse renders resp as one JSON document.
func EncodeResponse(resp Response) ([]byte, error) {
	switch r := resp.(type) {
	case Registered:
		return encodeTagged(tagRegistered, r)
	case MessageSent:
		return encodeTagged(tagMessageSent, r)
	case MessageReceived:
		return encodeTagged(tagMessageReceived, r)
	case ClientList:
		return encodeTagged(tagClientList, r)
	case Error:
		return encodeTagged(tagError, r)
	case Ok:
		return json.Marshal(tagOk)
	default:
		return nil, fmt.Errorf("protocol: unsupported response type %T", resp)
	}
}

// DecodeResponse parses one JSON document into a Response. Unknown tags,
// missing required fields, and unparseable input all wrap ErrMalformed.
func DecodeResponse(data []byte) (Response, error) {
	tag, payload, err := splitTagged(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagRegistered:
		var r Registered
		if err := decodeVariant(tag, payload, &r); err != nil {
			return nil, err
		}
		if r.ServerPublicKey == "" {
			return nil, fmt.Errorf("%w: %s requires server_public_key", ErrMalformed, tag)
		}
		return r, nil
	case tagMessageSent:
		var r MessageSent
		if err := decodeVariant(tag, payload, &r); err != nil {
			return nil, err
		}
		if r.MessageID == "" {
			return nil, fmt.Errorf("%w: %s requires message_id", ErrMalformed, tag)
		}
		return r, nil
	case tagMessageReceived:
		var r MessageReceived
		if err := decodeVariant(tag, payload, &r); err != nil {
			return nil, err
		}
		if r.Message.ID == "" {
			return nil, fmt.Errorf("%w: %s requires a message id", ErrMalformed, tag)
		}
		return r, nil
	case tagClientList:
		var r ClientList
		if err := decodeVariant(tag, payload, &r); err != nil {
			return nil, err
		}
		return r, nil
	case tagError:
		var r Error
		if err := decodeVariant(tag, payload, &r); err != nil {
			return nil, err
		}
		return r, nil
	case tagOk:
		return Ok{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown response %q", ErrMalformed, tag)
	}
}
