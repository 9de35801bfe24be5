package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"fireplace/internal/crypto"
	"fireplace/internal/domain"
)

// FileStore keeps secrets in a single passphrase-encrypted file. The whole
// file is decrypted, modified and re-sealed on every write, so each call is
// atomic with respect to other calls on the same FileStore.
//
// On disk the plaintext is a JSON object of service -> account -> secret.
type FileStore struct {
	path       string
	passphrase []byte
	params     scryptParams
	mu         sync.Mutex
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithScryptCost overrides the scrypt parameters used when sealing. Existing
// files keep the parameters they were written with.
func WithScryptCost(n, r, p int) FileStoreOption {
	return func(s *FileStore) { s.params = scryptParams{N: n, R: r, P: p} }
}

// NewFileStore returns a FileStore at path protected by passphrase.
func NewFileStore(path, passphrase string, opts ...FileStoreOption) *FileStore {
	s := &FileStore{
		path:       path,
		passphrase: []byte(passphrase),
		params:     scryptParamsDefault(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the location of the secrets file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(service, account string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	b, ok := entries[service][account]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *FileStore) Set(service, account string, secret []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if entries[service] == nil {
		entries[service] = make(map[string][]byte)
	}
	entries[service][account] = append([]byte(nil), secret...)
	return s.save(entries)
}

func (s *FileStore) Delete(service, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := entries[service][account]; !ok {
		return domain.ErrNotFound
	}
	delete(entries[service], account)
	if len(entries[service]) == 0 {
		delete(entries, service)
	}
	return s.save(entries)
}

// List returns the accounts held under service in sorted order.
func (s *FileStore) List(service string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries[service]))
	for account := range entries[service] {
		out = append(out, account)
	}
	sort.Strings(out)
	return out, nil
}

// load reads and decrypts the file. A missing file is an empty store.
func (s *FileStore) load() (map[string]map[string][]byte, error) {
	if len(s.passphrase) == 0 {
		return nil, fmt.Errorf("%w: no passphrase for secrets file", domain.ErrAccessDenied)
	}
	raw, err := readFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read secrets file: %v", domain.ErrAccessDenied, err)
	}
	entries := make(map[string]map[string][]byte)
	if raw == nil {
		return entries, nil
	}
	pt, err := open(s.passphrase, raw)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(pt)
	if err := json.Unmarshal(pt, &entries); err != nil {
		return nil, fmt.Errorf("%w: secrets file contents: %v", domain.ErrInvalidData, err)
	}
	return entries, nil
}

func (s *FileStore) save(entries map[string]map[string][]byte) error {
	pt, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	defer crypto.Wipe(pt)
	sealed, err := seal(s.passphrase, pt, s.params)
	if err != nil {
		return err
	}
	if err := writeFile(s.path, sealed, 0o600); err != nil {
		return fmt.Errorf("%w: write secrets file: %v", domain.ErrAccessDenied, err)
	}
	return nil
}

var (
	_ domain.SecretStore  = (*FileStore)(nil)
	_ domain.SecretLister = (*FileStore)(nil)
)
