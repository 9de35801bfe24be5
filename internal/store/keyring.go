package store

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"fireplace/internal/domain"
)

// KeyringStore persists secrets in the OS keychain. Secret bytes are stored
// base64-encoded because keychain passwords are strings on some platforms.
// Entries written as raw JSON by other tools under the same service and
// account read back as domain.ErrInvalidData.
//
// The OS keychain cannot enumerate entries by service, so KeyringStore does
// not implement domain.SecretLister.
type KeyringStore struct{}

// NewKeyringStore returns a store backed by the OS keychain.
func NewKeyringStore() *KeyringStore { return &KeyringStore{} }

// Get returns the secret under (service, account).
func (s *KeyringStore) Get(service, account string) ([]byte, error) {
	enc, err := keyring.Get(service, account)
	if err != nil {
		return nil, mapKeyringErr("read", err)
	}
	b, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, fmt.Errorf("%w: keychain entry is not base64: %v", domain.ErrInvalidData, err)
	}
	return b, nil
}

// Set writes secret under (service, account), replacing any previous value.
func (s *KeyringStore) Set(service, account string, secret []byte) error {
	if err := keyring.Set(service, account, base64.StdEncoding.EncodeToString(secret)); err != nil {
		return mapKeyringErr("write", err)
	}
	return nil
}

// Delete removes the entry under (service, account).
func (s *KeyringStore) Delete(service, account string) error {
	if err := keyring.Delete(service, account); err != nil {
		return mapKeyringErr("delete", err)
	}
	return nil
}

func mapKeyringErr(op string, err error) error {
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return domain.ErrNotFound
	case errors.Is(err, keyring.ErrUnsupportedPlatform):
		return domain.ErrUnsupportedPlatform
	default:
		return fmt.Errorf("%w: %s: %v", domain.ErrAccessDenied, op, err)
	}
}

// Compile-time assertion that KeyringStore implements domain.SecretStore.
var _ domain.SecretStore = (*KeyringStore)(nil)
