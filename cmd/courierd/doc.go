// Package main runs courierd, the store-and-forward relay. It registers
// client signing keys, verifies and queues encrypted messages, and answers
// queries about registered clients.
//
// # Wire protocol
//
// Clients speak newline-framed JSON over TCP. Each line is one command; the
// relay answers each with exactly one response line. Commands and responses
// are externally tagged unions: {"Register":{...}} for variants with fields,
// bare strings like "GetClients" for variants without.
//
//	Register {client_id, public_key}
//	    Store the client's Ed25519 verification key (64 hex chars).
//	    Answers Registered {server_public_key}.
//
//	Send {sender_id, recipient_id, encrypted_content, signature, message_id}
//	    Queue a ciphertext for recipient_id. The signature must verify
//	    against the sender's registered key over the encrypted_content hex
//	    string. Answers MessageSent {message_id}.
//
//	GetMessages {client_id}
//	    Return the most recently queued message for client_id as
//	    MessageReceived {message}, or Error {"No messages found"}.
//
//	GetClients
//	    Answers ClientList {clients}, ids sorted.
//
//	Heartbeat {client_id}
//	    Refresh the client's last-seen timestamp. Answers Ok.
//
// # Behaviour
//
//   - A failed command answers Error {message}; the connection stays open.
//   - State persists to clients.json and messages.json under the data dir
//     and survives restarts. The server identity does not: a restart means a
//     new server key, handed out on the next Register.
//   - An ops HTTP listener serves /healthz and Prometheus /metrics.
//
// The relay never sees plaintext or agreement keys; it stores ciphertext and
// signing keys only.
package main
