package interfaces

// SecretStore is the platform secure-storage primitive: a key-value secret
// store addressed by (service, account). Implementations map their native
// failures onto the domain error kinds: a missing entry is ErrNotFound, a
// refused operation is ErrAccessDenied, an absent backend is
// ErrUnsupportedPlatform.
type SecretStore interface {
	Get(service, account string) ([]byte, error)
	Set(service, account string, secret []byte) error
	Delete(service, account string) error
}

// SecretLister is implemented by stores that can enumerate the accounts
// held under a service. OS keyrings generally cannot.
type SecretLister interface {
	List(service string) ([]string, error)
}
