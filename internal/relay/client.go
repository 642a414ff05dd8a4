package relay

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"courier/internal/domain"
	"courier/internal/protocol"
)

// Client talks to a courier relay. It keeps no connection state; each call is
// an independent dial, so a relay restart between calls goes unnoticed.
type Client struct {
	addr   string
	dialer net.Dialer
}

var _ domain.RelayClient = (*Client)(nil)

// New builds a Client for the relay at addr.
func New(addr string) *Client {
	return &Client{addr: addr}
}

// Register announces clientID and its Ed25519 verification key and returns
// the server's own verification key.
func (c *Client) Register(ctx context.Context, clientID string, signingKey []byte) ([]byte, error) {
	resp, err := c.call(ctx, protocol.Register{
		ClientID:  clientID,
		PublicKey: hex.EncodeToString(signingKey),
	})
	if err != nil {
		return nil, err
	}
	switch r := resp.(type) {
	case protocol.Registered:
		key, err := hex.DecodeString(r.ServerPublicKey)
		if err != nil {
			return nil, fmt.Errorf("server key is not valid hex: %w", err)
		}
		return key, nil
	case protocol.Error:
		return nil, fmt.Errorf("relay: %s", r.Message)
	default:
		return nil, unexpectedResponse("Register", resp)
	}
}

// SendMessage relays one prepared payload and returns the server-confirmed
// message id. A send from an id the relay never saw comes back as
// domain.ErrUnknownSender.
func (c *Client) SendMessage(ctx context.Context, out domain.Outbound) (string, error) {
	resp, err := c.call(ctx, protocol.Send{
		SenderID:         out.SenderID,
		RecipientID:      out.RecipientID,
		EncryptedContent: out.Content,
		Signature:        out.Signature,
		MessageID:        out.MessageID,
	})
	if err != nil {
		return "", err
	}
	switch r := resp.(type) {
	case protocol.MessageSent:
		return r.MessageID, nil
	case protocol.Error:
		if strings.Contains(r.Message, "Unknown sender") {
			return "", fmt.Errorf("%w: %s, register before sending", domain.ErrUnknownSender, out.SenderID)
		}
		return "", fmt.Errorf("relay: %s", r.Message)
	default:
		return "", unexpectedResponse("Send", resp)
	}
}

// FetchLatest returns the most recently queued message for clientID. An
// empty mailbox comes back as domain.ErrNoMessages.
func (c *Client) FetchLatest(ctx context.Context, clientID string) (domain.Message, error) {
	resp, err := c.call(ctx, protocol.GetMessages{ClientID: clientID})
	if err != nil {
		return domain.Message{}, err
	}
	switch r := resp.(type) {
	case protocol.MessageReceived:
		return r.Message, nil
	case protocol.Error:
		if strings.Contains(r.Message, "No messages found") {
			return domain.Message{}, domain.ErrNoMessages
		}
		return domain.Message{}, fmt.Errorf("relay: %s", r.Message)
	default:
		return domain.Message{}, unexpectedResponse("GetMessages", resp)
	}
}

// ListClients returns the ids of every registered client.
func (c *Client) ListClients(ctx context.Context) ([]string, error) {
	resp, err := c.call(ctx, protocol.GetClients{})
	if err != nil {
		return nil, err
	}
	switch r := resp.(type) {
	case protocol.ClientList:
		return r.Clients, nil
	case protocol.Error:
		return nil, fmt.Errorf("relay: %s", r.Message)
	default:
		return nil, unexpectedResponse("GetClients", resp)
	}
}

// Heartbeat refreshes clientID's last-seen timestamp on the relay.
func (c *Client) Heartbeat(ctx context.Context, clientID string) error {
	resp, err := c.call(ctx, protocol.Heartbeat{ClientID: clientID})
	if err != nil {
		return err
	}
	switch r := resp.(type) {
	case protocol.Ok:
		return nil
	case protocol.Error:
		return fmt.Errorf("relay: %s", r.Message)
	default:
		return unexpectedResponse("Heartbeat", resp)
	}
}

// call performs one dial, write, read cycle.
func (c *Client) call(ctx context.Context, cmd protocol.Command) (protocol.Response, error) {
	payload, err := protocol.EncodeCommand(cmd)
	if err != nil {
		return nil, err
	}

	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, fmt.Errorf("dial relay %s: %w", c.addr, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write to relay: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read relay response: %w", err)
	}
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, fmt.Errorf("read relay response: %w", io.ErrUnexpectedEOF)
	}
	return protocol.DecodeResponse(line)
}

func unexpectedResponse(op string, resp protocol.Response) error {
	return fmt.Errorf("unexpected response to %s: %T", op, resp)
}
