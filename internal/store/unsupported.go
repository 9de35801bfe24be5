package store

import "fireplace/internal/domain"

// Unsupported is the secure store for platforms without native support.
// Every operation fails with domain.ErrUnsupportedPlatform.
type Unsupported struct{}

func (Unsupported) Get(string, string) ([]byte, error) { return nil, domain.ErrUnsupportedPlatform }
func (Unsupported) Set(string, string, []byte) error   { return domain.ErrUnsupportedPlatform }
func (Unsupported) Delete(string, string) error        { return domain.ErrUnsupportedPlatform }
func (Unsupported) List(string) ([]string, error)      { return nil, domain.ErrUnsupportedPlatform }

var (
	_ domain.SecretStore  = Unsupported{}
	_ domain.SecretLister = Unsupported{}
)
