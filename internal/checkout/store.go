package checkout

import (
	"context"
	"sync"
)

// GuestKey is the cart slot used before an account is known.
const GuestKey = "guest"

// CartKey builds the persisted slot name for an account, matching the
// browser's cart_{accountId|"guest"} layout.
func CartKey(accountID string) string {
	if accountID == "" {
		accountID = GuestKey
	}

	return "cart_" + accountID
}

// Store is a keyed cart slot. Save overwrites the whole slot (last writer
// wins); Load on an absent key returns an empty cart, not an error.
type Store interface {
	Load(ctx context.Context, key string) ([]CartLine, error)
	Save(ctx context.Context, key string, lines []CartLine) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps cart slots in-process. Used for guest sessions and tests.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string][]CartLine
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]CartLine)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, ok := s.slots[key]
	if !ok {
		return nil, nil
	}

	out := make([]CartLine, len(lines))
	copy(out, lines)

	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, lines []CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]CartLine, len(lines))
	copy(stored, lines)
	s.slots[key] = stored

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)

	return nil
}
