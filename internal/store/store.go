package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"courier/internal/domain"
	"courier/internal/util/logging"
)

const (
	clientsFile  = "clients.json"
	messagesFile = "messages.json"

	fileMode = os.FileMode(0o600)
	dirMode  = os.FileMode(0o700)
)

// Store is the relay's registry of clients and per-recipient message queues.
// Each map has its own lock; mutators rewrite the affected file on disk
// before returning, so errors.Is(err, domain.ErrStorage) after a mutation
// means memory and disk may disagree.
type Store struct {
	dir string

	clientsMu sync.RWMutex
	clients   map[string]domain.ClientRecord

	messagesMu sync.RWMutex
	messages   map[string][]domain.Message
}

var _ domain.Store = (*Store)(nil)

// Open creates dir if needed and loads any persisted state. A missing file
// starts empty. An unreadable or corrupt file is logged and skipped, so the
// relay always comes up; the bad file is overwritten on the next mutation.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("%w: create data dir %s: %w", domain.ErrStorage, dir, err)
	}

	s := &Store{
		dir:      dir,
		clients:  make(map[string]domain.ClientRecord),
		messages: make(map[string][]domain.Message),
	}

	clientsPath := filepath.Join(dir, clientsFile)
	if err := readJSON(clientsPath, &s.clients); err != nil {
		logging.Warn("clients file unreadable, starting empty",
			zap.String("path", clientsPath), zap.Error(err))
		s.clients = make(map[string]domain.ClientRecord)
	}

	messagesPath := filepath.Join(dir, messagesFile)
	if err := readJSON(messagesPath, &s.messages); err != nil {
		logging.Warn("messages file unreadable, starting empty",
			zap.String("path", messagesPath), zap.Error(err))
		s.messages = make(map[string][]domain.Message)
	}

	return s, nil
}

// RegisterClient upserts the record for id with fresh registration and
// last-seen timestamps. An existing record for id is replaced wholesale.
func (s *Store) RegisterClient(id string, signingKey []byte) error {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	now := time.Now().UTC()
	s.clients[id] = domain.ClientRecord{
		ID:           id,
		PublicKey:    append(domain.HexBytes(nil), signingKey...),
		RegisteredAt: now,
		LastSeen:     now,
	}
	return s.persistClientsLocked()
}

// UpdateLastSeen refreshes the last-seen timestamp for id. Unknown ids are a
// no-op and touch nothing on disk.
func (s *Store) UpdateLastSeen(id string) error {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	rec, ok := s.clients[id]
	if !ok {
		return nil
	}
	rec.LastSeen = time.Now().UTC()
	s.clients[id] = rec
	return s.persistClientsLocked()
}

// AddMessage appends msg to its recipient's queue.
func (s *Store) AddMessage(msg domain.Message) error {
	s.messagesMu.Lock()
	defer s.messagesMu.Unlock()

	s.messages[msg.RecipientID] = append(s.messages[msg.RecipientID], msg)
	if err := writeJSON(filepath.Join(s.dir, messagesFile), s.messages, fileMode); err != nil {
		return fmt.Errorf("%w: persist messages: %w", domain.ErrStorage, err)
	}
	return nil
}

// MessagesFor returns a copy of the queue for clientID in arrival order.
func (s *Store) MessagesFor(clientID string) []domain.Message {
	s.messagesMu.RLock()
	defer s.messagesMu.RUnlock()

	q := s.messages[clientID]
	if len(q) == 0 {
		return nil
	}
	out := make([]domain.Message, len(q))
	copy(out, q)
	return out
}

// Client returns the record for id. The returned key is a copy.
func (s *Store) Client(id string) (domain.ClientRecord, bool) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	rec, ok := s.clients[id]
	if !ok {
		return domain.ClientRecord{}, false
	}
	rec.PublicKey = append(domain.HexBytes(nil), rec.PublicKey...)
	return rec, true
}

// AllClients returns every registered id, sorted.
func (s *Store) AllClients() []string {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	ids := make([]string, 0, len(s.clients))
	for id := range s.clients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) persistClientsLocked() error {
	if err := writeJSON(filepath.Join(s.dir, clientsFile), s.clients, fileMode); err != nil {
		return fmt.Errorf("%w: persist clients: %w", domain.ErrStorage, err)
	}
	return nil
}
