package server_test

import (
	"bufio"
	"encoding/hex"
	"net"
	"strings"
	"testing"

	"courier/internal/crypto"
	"courier/internal/protocol"
	"courier/internal/server"
	"courier/internal/store"
)

func startServer(t *testing.T) string {
	t.Helper()
	serverID, err := crypto.NewIdentity()
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { _ = lis.Close() })

	go func() { _ = server.New(server.NewProcessor(serverID, st)).Serve(lis) }()
	return lis.Addr().String()
}

type session struct {
	conn net.Conn
	r    *bufio.Reader
}

func dialSession(t *testing.T, addr string) *session {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return &session{conn: conn, r: bufio.NewReader(conn)}
}

// writeRaw sends one pre-framed line without going through the encoder.
func (s *session) writeRaw(t *testing.T, line string) {
	t.Helper()
	if _, err := s.conn.Write([]byte(line + "\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func (s *session) readResponse(t *testing.T) protocol.Response {
	t.Helper()
	line, err := s.r.ReadString('\n')
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	resp, err := protocol.DecodeResponse([]byte(strings.TrimSpace(line)))
	if err != nil {
		t.Fatalf("DecodeResponse(%s): %v", line, err)
	}
	return resp
}

func (s *session) roundTrip(t *testing.T, cmd protocol.Command) protocol.Response {
	t.Helper()
	payload, err := protocol.EncodeCommand(cmd)
	if err != nil {
		t.Fatalf("EncodeCommand: %v", err)
	}
	s.writeRaw(t, string(payload))
	return s.readResponse(t)
}

func TestServe_SessionHandlesManyCommands(t *testing.T) {
	addr := startServer(t)
	sess := dialSession(t, addr)

	alice, err := crypto.NewIdentity()
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}

	resp := sess.roundTrip(t, protocol.Register{
		ClientID:  "alice",
		PublicKey: hex.EncodeToString(alice.SigningPublic()),
	})
	if _, ok := resp.(protocol.Registered); !ok {
		t.Fatalf("Register = %#v", resp)
	}

	resp = sess.roundTrip(t, protocol.Heartbeat{ClientID: "alice"})
	if _, ok := resp.(protocol.Ok); !ok {
		t.Fatalf("Heartbeat = %#v", resp)
	}

	resp = sess.roundTrip(t, protocol.GetClients{})
	list, ok := resp.(protocol.ClientList)
	if !ok || len(list.Clients) != 1 || list.Clients[0] != "alice" {
		t.Fatalf("GetClients = %#v", resp)
	}
}

func TestServe_WireRoundTrip(t *testing.T) {
	addr := startServer(t)
	sender := dialSession(t, addr)
	receiver := dialSession(t, addr)

	alice, err := crypto.NewIdentity()
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	bob, err := crypto.NewIdentity()
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}

	sender.roundTrip(t, protocol.Register{ClientID: "alice", PublicKey: hex.EncodeToString(alice.SigningPublic())})
	receiver.roundTrip(t, protocol.Register{ClientID: "bob", PublicKey: hex.EncodeToString(bob.SigningPublic())})

	// Seal exactly as a real client would, then sign the hex form.
	key, err := alice.SharedKey(bob.AgreementPublic())
	if err != nil {
		t.Fatalf("SharedKey: %v", err)
	}
	sealed, err := alice.Seal(key, []byte("wire courier test"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	contentHex := hex.EncodeToString(sealed)
	resp := sender.roundTrip(t, protocol.Send{
		SenderID:         "alice",
		RecipientID:      "bob",
		EncryptedContent: contentHex,
		Signature:        hex.EncodeToString(alice.Sign([]byte(contentHex))),
		MessageID:        "m-wire-1",
	})
	if sent, ok := resp.(protocol.MessageSent); !ok || sent.MessageID != "m-wire-1" {
		t.Fatalf("Send = %#v", resp)
	}

	resp = receiver.roundTrip(t, protocol.GetMessages{ClientID: "bob"})
	recv, ok := resp.(protocol.MessageReceived)
	if !ok {
		t.Fatalf("GetMessages = %#v", resp)
	}

	bobKey, err := bob.SharedKey(alice.AgreementPublic())
	if err != nil {
		t.Fatalf("SharedKey: %v", err)
	}
	plain, err := crypto.Open(bobKey, recv.Message.Content)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if string(plain) != "wire courier test" {
		t.Fatalf("plaintext = %q", plain)
	}
}

func TestServe_MalformedLineKeepsSessionOpen(t *testing.T) {
	addr := startServer(t)
	sess := dialSession(t, addr)

	sess.writeRaw(t, "this is not json")
	if _, ok := sess.readResponse(t).(protocol.Error); !ok {
		t.Fatal("malformed line should answer Error")
	}

	sess.writeRaw(t, `{"Frobnicate":{}}`)
	if _, ok := sess.readResponse(t).(protocol.Error); !ok {
		t.Fatal("unknown command should answer Error")
	}

	// The session is still good for valid traffic.
	resp := sess.roundTrip(t, protocol.Heartbeat{ClientID: "nobody"})
	if _, ok := resp.(protocol.Ok); !ok {
		t.Fatalf("Heartbeat after garbage = %#v", resp)
	}
}

func TestServe_BlankLinesIgnored(t *testing.T) {
	addr := startServer(t)
	sess := dialSession(t, addr)

	sess.writeRaw(t, "")
	sess.writeRaw(t, "   ")
	resp := sess.roundTrip(t, protocol.GetClients{})
	if list, ok := resp.(protocol.ClientList); !ok || len(list.Clients) != 0 {
		t.Fatalf("GetClients = %#v, want empty list", resp)
	}
}

func TestServe_ConnectionsShareState(t *testing.T) {
	addr := startServer(t)
	first := dialSession(t, addr)
	second := dialSession(t, addr)

	alice, err := crypto.NewIdentity()
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	first.roundTrip(t, protocol.Register{ClientID: "alice", PublicKey: hex.EncodeToString(alice.SigningPublic())})

	resp := second.roundTrip(t, protocol.GetClients{})
	list, ok := resp.(protocol.ClientList)
	if !ok || len(list.Clients) != 1 || list.Clients[0] != "alice" {
		t.Fatalf("GetClients on second connection = %#v", resp)
	}
}
