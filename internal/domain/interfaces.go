package domain

import "context"

// Store is the authoritative registry of clients and queued messages.
// Mutating calls persist before returning; reads never touch the disk.
type Store interface {
	// RegisterClient upserts the record for id with the given Ed25519
	// verification key and fresh timestamps.
	RegisterClient(id string, signingKey []byte) error

	// UpdateLastSeen refreshes the last-seen timestamp for id. Unknown ids
	// are a no-op.
	UpdateLastSeen(id string) error

	// AddMessage appends msg to its recipient's queue.
	AddMessage(msg Message) error

	// MessagesFor returns a copy of the queue for clientID in arrival order.
	MessagesFor(clientID string) []Message

	// Client returns the record for id.
	Client(id string) (ClientRecord, bool)

	// AllClients returns every registered id, sorted.
	AllClients() []string
}

// RelayClient is the client side of the wire protocol. Implementations map
// server Error responses onto Go errors; an empty mailbox surfaces as
// ErrNoMessages.
type RelayClient interface {
	// Register announces clientID and its Ed25519 verification key and
	// returns the server's own verification key.
	Register(ctx context.Context, clientID string, signingKey []byte) ([]byte, error)

	// SendMessage relays one prepared payload and returns the
	// server-confirmed message id. Sends from an unregistered id surface
	// as ErrUnknownSender.
	SendMessage(ctx context.Context, out Outbound) (string, error)

	// FetchLatest returns the most recently queued message for clientID.
	FetchLatest(ctx context.Context, clientID string) (Message, error)

	// ListClients returns the ids of every registered client.
	ListClients(ctx context.Context) ([]string, error)

	// Heartbeat refreshes clientID's last-seen timestamp on the server.
	Heartbeat(ctx context.Context, clientID string) error
}
