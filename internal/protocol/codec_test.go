package protocol_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"courier/internal/domain"
	"courier/internal/protocol"
)

func TestEncodeCommand_WireShapes(t *testing.T) {
	cases := []struct {
		name string
		cmd  protocol.Command
		want string
	}{
		{
			"register",
			protocol.Register{ClientID: "alice", PublicKey: "ab12"},
			`{"Register":{"client_id":"alice","public_key":"ab12"}}`,
		},
		{
			"send",
			protocol.Send{SenderID: "alice", RecipientID: "bob", EncryptedContent: "00ff", Signature: "aa", MessageID: "m-1"},
			`{"Send":{"sender_id":"alice","recipient_id":"bob","encrypted_content":"00ff","signature":"aa","message_id":"m-1"}}`,
		},
		{
			"get_messages",
			protocol.GetMessages{ClientID: "bob"},
			`{"GetMessages":{"client_id":"bob"}}`,
		},
		{
			"get_clients is a bare string",
			protocol.GetClients{},
			`"GetClients"`,
		},
		{
			"heartbeat",
			protocol.Heartbeat{ClientID: "alice"},
			`{"Heartbeat":{"client_id":"alice"}}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := protocol.EncodeCommand(tc.cmd)
			if err != nil {
				t.Fatalf("EncodeCommand: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("EncodeCommand = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDecodeCommand_RoundTrip(t *testing.T) {
	cmds := []protocol.Command{
		protocol.Register{ClientID: "alice", PublicKey: "ab12"},
		protocol.Send{SenderID: "alice", RecipientID: "bob", EncryptedContent: "00ff", Signature: "aa", MessageID: "m-1"},
		protocol.GetMessages{ClientID: "bob"},
		protocol.GetClients{},
		protocol.Heartbeat{ClientID: "alice"},
	}
	for _, cmd := range cmds {
		data, err := protocol.EncodeCommand(cmd)
		if err != nil {
			t.Fatalf("EncodeCommand(%T): %v", cmd, err)
		}
		got, err := protocol.DecodeCommand(data)
		if err != nil {
			t.Fatalf("DecodeCommand(%s): %v", data, err)
		}
		if got != cmd {
			t.Fatalf("round trip = %#v, want %#v", got, cmd)
		}
	}
}

func TestDecodeCommand_UnitVariantSpellings(t *testing.T) {
	for _, raw := range []string{`"GetClients"`, `{"GetClients":null}`} {
		got, err := protocol.DecodeCommand([]byte(raw))
		if err != nil {
			t.Fatalf("DecodeCommand(%s): %v", raw, err)
		}
		if _, ok := got.(protocol.GetClients); !ok {
			t.Fatalf("DecodeCommand(%s) = %T, want GetClients", raw, got)
		}
	}
}

func TestDecodeCommand_Malformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{"Register"`},
		{"empty object", `{}`},
		{"two variant keys", `{"Register":{},"Send":{}}`},
		{"unknown tag", `{"Frobnicate":{"x":1}}`},
		{"unknown bare tag", `"Shutdown"`},
		{"array", `[1,2,3]`},
		{"number", `42`},
		{"field variant as bare string", `"Register"`},
		{"register missing key", `{"Register":{"client_id":"alice"}}`},
		{"register null payload", `{"Register":null}`},
		{"send missing message id", `{"Send":{"sender_id":"a","recipient_id":"b","encrypted_content":"00","signature":"aa"}}`},
		{"heartbeat wrong field type", `{"Heartbeat":{"client_id":7}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := protocol.DecodeCommand([]byte(tc.raw))
			if !errors.Is(err, protocol.ErrMalformed) {
				t.Fatalf("DecodeCommand(%s) err = %v, want ErrMalformed", tc.raw, err)
			}
		})
	}
}

func TestDecodeCommand_IgnoresUnknownFields(t *testing.T) {
	raw := `{"Heartbeat":{"client_id":"alice","extra":true}}`
	got, err := protocol.DecodeCommand([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeCommand: %v", err)
	}
	if hb, ok := got.(protocol.Heartbeat); !ok || hb.ClientID != "alice" {
		t.Fatalf("DecodeCommand = %#v, want Heartbeat for alice", got)
	}
}

func TestEncodeResponse_WireShapes(t *testing.T) {
	cases := []struct {
		name string
		resp protocol.Response
		want string
	}{
		{
			"registered",
			protocol.Registered{ServerPublicKey: "beef"},
			`{"Registered":{"server_public_key":"beef"}}`,
		},
		{
			"message_sent",
			protocol.MessageSent{MessageID: "m-1"},
			`{"MessageSent":{"message_id":"m-1"}}`,
		},
		{
			"client_list",
			protocol.ClientList{Clients: []string{"alice", "bob"}},
			`{"ClientList":{"clients":["alice","bob"]}}`,
		},
		{
			"error",
			protocol.Error{Message: "No messages found"},
			`{"Error":{"message":"No messages found"}}`,
		},
		{
			"ok is a bare string",
			protocol.Ok{},
			`"Ok"`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := protocol.EncodeResponse(tc.resp)
			if err != nil {
				t.Fatalf("EncodeResponse: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("EncodeResponse = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestEncodeResponse_MessageEnvelope(t *testing.T) {
	msg := domain.Message{
		ID:          "m-1",
		SenderID:    "alice",
		RecipientID: "bob",
		Content:     domain.HexBytes{0x00, 0xff},
		Timestamp:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Encrypted:   true,
		Signature:   domain.HexBytes{0xaa},
	}
	got, err := protocol.EncodeResponse(protocol.MessageReceived{Message: msg})
	if err != nil {
		t.Fatalf("EncodeResponse: %v", err)
	}
	want := `{"MessageReceived":{"message":{"id":"m-1","sender_id":"alice","recipient_id":"bob",` +
		`"content":"00ff","timestamp":"2025-01-02T03:04:05Z","encrypted":true,"signature":"aa"}}}`
	if string(got) != want {
		t.Fatalf("EncodeResponse =\n %s\nwant\n %s", got, want)
	}
}

func TestDecodeResponse_MessageRoundTrip(t *testing.T) {
	msg := domain.Message{
		ID:          "m-1",
		SenderID:    "alice",
		RecipientID: "bob",
		Content:     domain.HexBytes{0x00, 0xff},
		Timestamp:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Encrypted:   true,
	}
	data, err := protocol.EncodeResponse(protocol.MessageReceived{Message: msg})
	if err != nil {
		t.Fatalf("EncodeResponse: %v", err)
	}
	decoded, err := protocol.DecodeResponse(data)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	mr, ok := decoded.(protocol.MessageReceived)
	if !ok {
		t.Fatalf("DecodeResponse = %T, want MessageReceived", decoded)
	}
	got := mr.Message
	if got.ID != msg.ID || got.SenderID != msg.SenderID || got.RecipientID != msg.RecipientID {
		t.Fatalf("ids = %#v, want %#v", got, msg)
	}
	if got.Content.String() != msg.Content.String() {
		t.Fatalf("content = %s, want %s", got.Content, msg.Content)
	}
	if !got.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, msg.Timestamp)
	}
	if got.Signature != nil {
		t.Fatalf("signature = %v, want nil for a null field", got.Signature)
	}
}

func TestDecodeResponse_UnitVariantSpellings(t *testing.T) {
	for _, raw := range []string{`"Ok"`, `{"Ok":null}`} {
		got, err := protocol.DecodeResponse([]byte(raw))
		if err != nil {
			t.Fatalf("DecodeResponse(%s): %v", raw, err)
		}
		if _, ok := got.(protocol.Ok); !ok {
			t.Fatalf("DecodeResponse(%s) = %T, want Ok", raw, got)
		}
	}
}

func TestDecodeResponse_Malformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"unknown tag", `{"Shrug":{}}`},
		{"registered missing key", `{"Registered":{}}`},
		{"message sent missing id", `{"MessageSent":{}}`},
		{"message received empty", `{"MessageReceived":{"message":{}}}`},
		{"bad hex in message", `{"MessageReceived":{"message":{"id":"m","sender_id":"a","recipient_id":"b","content":"zz","timestamp":"2025-01-02T03:04:05Z","encrypted":true,"signature":null}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := protocol.DecodeResponse([]byte(tc.raw))
			if !errors.Is(err, protocol.ErrMalformed) {
				t.Fatalf("DecodeResponse(%s) err = %v, want ErrMalformed", tc.raw, err)
			}
		})
	}
}

func TestCommandName(t *testing.T) {
	if got := protocol.CommandName(protocol.Send{}); got != "Send" {
		t.Fatalf("CommandName = %q, want Send", got)
	}
	if got := protocol.CommandName(protocol.GetClients{}); got != "GetClients" {
		t.Fatalf("CommandName = %q, want GetClients", got)
	}
}

func TestErrMalformed_MentionsCause(t *testing.T) {
	_, err := protocol.DecodeCommand([]byte(`{"Frobnicate":{}}`))
	if err == nil || !strings.Contains(err.Error(), "Frobnicate") {
		t.Fatalf("err = %v, want the unknown tag named", err)
	}
}
