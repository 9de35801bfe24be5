package app

import (
	"fmt"
	"log/slog"
	"runtime"

	"fireplace/internal/domain"
	"fireplace/internal/services/credential"
	"fireplace/internal/services/identity"
	"fireplace/internal/store"
)

// Wire bundles the secure store and the caller-facing bridge built on it.
type Wire struct {
	Store  domain.SecretStore
	Bridge *Bridge
}

// NewWire constructs the dependency graph from cfg. A nil logger discards
// all output.
func NewWire(cfg Config, logger *slog.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	secrets, err := newSecretStore(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Backend == BackendAuto && !store.PlatformSupported {
		logger.Warn("no native secure store on this platform; every call will fail", "goos", runtime.GOOS)
	}
	logger.Debug("secure store ready", "backend", string(cfg.Backend), "service", cfg.Service)

	ids := identity.New(secrets,
		identity.WithService(cfg.Service),
		identity.WithLogger(logger.With("subsystem", "identity")),
	)
	vault := credential.New(secrets,
		credential.WithService(cfg.Service),
		credential.WithLogger(logger.With("subsystem", "vault")),
	)

	return &Wire{
		Store:  secrets,
		Bridge: NewBridge(ids, vault, logger),
	}, nil
}

func newSecretStore(cfg Config) (domain.SecretStore, error) {
	switch cfg.Backend {
	case BackendAuto:
		return store.NewPlatform(), nil
	case BackendKeyring:
		return store.NewKeyringStore(), nil
	case BackendFile:
		if cfg.File.Passphrase == "" {
			return nil, fmt.Errorf("file backend needs a passphrase in $%s", cfg.File.PassphraseEnv)
		}
		return store.NewFileStore(cfg.FilePath(), cfg.File.Passphrase), nil
	case BackendMemory:
		return store.NewMemoryStore(), nil
	case BackendUnsupported:
		return store.Unsupported{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
