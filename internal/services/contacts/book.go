package contacts

import (
	"encoding/hex"
	"fmt"
	"sort"
	"sync"

	"courier/internal/domain"
)

// Book maps peer ids to their X25519 public shares. Safe for concurrent use.
type Book struct {
	mu    sync.RWMutex
	peers map[string][32]byte
}

// NewBook returns an empty Book.
func NewBook() *Book {
	return &Book{peers: make(map[string][32]byte)}
}

// Add records the agreement key for id, given as 64 lowercase hex characters.
// Adding an id again replaces its key.
func (b *Book) Add(id, hexKey string) error {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return fmt.Errorf("agreement key for %s is not valid hex: %w", id, err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("agreement key for %s: want 32 bytes, got %d", id, len(raw))
	}

	var key [32]byte
	copy(key[:], raw)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.peers[id] = key
	return nil
}

// Key returns the stored share for id. A missing peer wraps
// domain.ErrUnknownRecipient.
func (b *Book) Key(id string) ([32]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	key, ok := b.peers[id]
	if !ok {
		return [32]byte{}, fmt.Errorf("%w: %s, exchange agreement keys first", domain.ErrUnknownRecipient, id)
	}
	return key, nil
}

// IDs returns every stored peer id, sorted.
func (b *Book) IDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := make([]string, 0, len(b.peers))
	for id := range b.peers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
