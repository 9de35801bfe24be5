package store

import (
	"sort"
	"sync"

	"fireplace/internal/domain"
)

// MemoryStore keeps secrets in process memory. Nothing survives the process;
// it exists for tests and for sessions that must not touch the OS keychain.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Get(service, account string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.entries[service][account]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (s *MemoryStore) Set(service, account string, secret []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.entries[service]
	if m == nil {
		m = make(map[string][]byte)
		s.entries[service] = m
	}
	m[account] = append([]byte(nil), secret...)
	return nil
}

func (s *MemoryStore) Delete(service, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.entries[service]
	if _, ok := m[account]; !ok {
		return domain.ErrNotFound
	}
	delete(m, account)
	return nil
}

// List returns the accounts held under service in sorted order.
func (s *MemoryStore) List(service string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.entries[service]))
	for account := range s.entries[service] {
		out = append(out, account)
	}
	sort.Strings(out)
	return out, nil
}

var (
	_ domain.SecretStore  = (*MemoryStore)(nil)
	_ domain.SecretLister = (*MemoryStore)(nil)
)
