package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"fireplace/internal/crypto"
	"fireplace/internal/domain"
)

// KeyAccount is the account name of the device private key entry.
const KeyAccount = "device-identity:ed25519"

// Service owns the device Ed25519 keypair. The key is created on first use
// and persisted as a 32-byte seed; the public key and device identifier are
// recomputed from the seed on every call rather than cached or stored.
type Service struct {
	store   domain.SecretStore
	service string
	rand    io.Reader
	log     *slog.Logger

	// mu serializes get-or-create so two first calls in this process cannot
	// persist two different keys.
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithService overrides the secure-store service identifier.
func WithService(name string) Option { return func(s *Service) { s.service = name } }

// WithRand overrides the randomness source used for key generation.
func WithRand(r io.Reader) Option { return func(s *Service) { s.rand = r } }

// WithLogger sets the logger used for operational messages.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// New returns an identity service backed by the given secure store.
func New(store domain.SecretStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		service: domain.DefaultService,
		rand:    rand.Reader,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// EnsureKeypair loads or creates the device keypair and returns its public
// half. The private half never leaves this package.
func (s *Service) EnsureKeypair() (domain.Ed25519Public, error) {
	priv, pub, err := s.getOrCreateKeypair()
	if err != nil {
		return domain.Ed25519Public{}, err
	}
	crypto.Wipe(priv)
	return pub, nil
}

// PublicKey returns the device public key as unpadded base64url.
func (s *Service) PublicKey() (string, error) {
	pub, err := s.EnsureKeypair()
	if err != nil {
		return "", err
	}
	return crypto.B64URL(pub[:]), nil
}

// DeviceID returns the lowercase hex SHA-256 of the device public key.
func (s *Service) DeviceID() (domain.DeviceID, error) {
	pub, err := s.EnsureKeypair()
	if err != nil {
		return "", err
	}
	return crypto.DeviceID(pub), nil
}

// Sign signs payload exactly as given and returns the signature as unpadded
// base64url. Callers canonicalize structured payloads before calling.
func (s *Service) Sign(payload []byte) (string, error) {
	priv, pub, err := s.getOrCreateKeypair()
	if err != nil {
		return "", err
	}
	defer crypto.Wipe(priv)
	sig := crypto.SignEd25519(priv, payload)
	if !crypto.VerifyEd25519(pub, payload, sig) {
		return "", errors.New("device key produced an invalid signature")
	}
	return crypto.B64URL(sig), nil
}

// getOrCreateKeypair loads the stored seed, or generates and persists one
// when none exists. A stored seed of the wrong length is reported as
// ErrInvalidData and left untouched.
func (s *Service) getOrCreateKeypair() (ed25519.PrivateKey, domain.Ed25519Public, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(s.service, KeyAccount)
	switch {
	case err == nil:
		defer crypto.Wipe(raw)
		if len(raw) != ed25519.SeedSize {
			return nil, domain.Ed25519Public{}, fmt.Errorf(
				"%w: device key is %d bytes, want %d", domain.ErrInvalidData, len(raw), ed25519.SeedSize)
		}
		var seed domain.Ed25519Seed
		copy(seed[:], raw)
		defer crypto.WipeSeed(&seed)
		priv, pub := crypto.DeriveEd25519(seed)
		return priv, pub, nil

	case errors.Is(err, domain.ErrNotFound):
		return s.createKeypair()

	default:
		return nil, domain.Ed25519Public{}, fmt.Errorf("load device key: %w", err)
	}
}

func (s *Service) createKeypair() (ed25519.PrivateKey, domain.Ed25519Public, error) {
	seed, err := crypto.GenerateEd25519Seed(s.rand)
	if err != nil {
		return nil, domain.Ed25519Public{}, fmt.Errorf("generate device key: %w", err)
	}
	defer crypto.WipeSeed(&seed)

	if err := s.store.Set(s.service, KeyAccount, seed[:]); err != nil {
		return nil, domain.Ed25519Public{}, fmt.Errorf("persist device key: %w", err)
	}
	priv, pub := crypto.DeriveEd25519(seed)
	s.log.Info("created device identity", "device_id", crypto.DeviceID(pub).String())
	return priv, pub, nil
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
