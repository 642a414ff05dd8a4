package app

import (
	"courier/internal/crypto"
	"courier/internal/domain"
	"courier/internal/relay"
	"courier/internal/services/contacts"
	"courier/internal/services/messaging"
)

// Wire bundles the identity, contact book, relay client and messaging
// service for the CLI.
type Wire struct {
	Config   Config
	Identity *crypto.Identity
	Book     *contacts.Book
	Relay    domain.RelayClient
	Messages *messaging.Service
}

// NewWire generates a fresh identity and constructs the dependency graph
// from cfg. The identity lives exactly as long as the process.
func NewWire(cfg Config) (*Wire, error) {
	identity, err := crypto.NewIdentity()
	if err != nil {
		return nil, err
	}

	book := contacts.NewBook()
	rc := relay.New(cfg.ServerAddr)

	return &Wire{
		Config:   cfg,
		Identity: identity,
		Book:     book,
		Relay:    rc,
		Messages: messaging.New(identity, book, rc),
	}, nil
}
