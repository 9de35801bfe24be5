package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"fireplace/internal/domain"
	"fireplace/internal/logging"
)

// Backend names a secure-store implementation.
type Backend string

const (
	// BackendAuto picks the native store for the build target.
	BackendAuto Backend = "auto"
	// BackendKeyring forces the OS keychain.
	BackendKeyring Backend = "keyring"
	// BackendFile uses a passphrase-encrypted file.
	BackendFile Backend = "file"
	// BackendMemory keeps secrets in process memory only.
	BackendMemory Backend = "memory"
	// BackendUnsupported fails every call; useful to exercise error paths.
	BackendUnsupported Backend = "unsupported"
)

// ConfigFileName is the name of the YAML config file under Home.
const ConfigFileName = "config.yaml"

// Environment variables consulted by ApplyEnv.
const (
	EnvBackend   = "FIREPLACE_BACKEND"
	EnvService   = "FIREPLACE_SERVICE"
	EnvLogLevel  = "FIREPLACE_LOG_LEVEL"
	EnvLogFormat = "FIREPLACE_LOG_FORMAT"

	defaultPassphraseEnv = "FIREPLACE_PASSPHRASE"
)

// FileConfig configures BackendFile.
type FileConfig struct {
	// Path of the encrypted secrets file; relative paths resolve under Home.
	Path string `yaml:"path"`
	// PassphraseEnv names the environment variable holding the passphrase.
	PassphraseEnv string `yaml:"passphrase_env"`
	// Passphrase is resolved from PassphraseEnv and never read from YAML.
	Passphrase string `yaml:"-"`
}

// Config holds runtime wiring options for building the app.
type Config struct {
	Home    string         `yaml:"-"`       // config directory, e.g. $HOME/.fireplace
	Service string         `yaml:"service"` // secure-store service identifier
	Backend Backend        `yaml:"backend"`
	File    FileConfig     `yaml:"file"`
	Log     logging.Config `yaml:"log"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig(home string) Config {
	return Config{
		Home:    home,
		Service: domain.DefaultService,
		Backend: BackendAuto,
		File: FileConfig{
			Path:          "secrets.enc",
			PassphraseEnv: defaultPassphraseEnv,
		},
		Log: logging.DefaultConfig(),
	}
}

// DefaultHome returns ~/.fireplace.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".fireplace"), nil
}

// LoadConfig overlays the YAML file at path onto base. A missing file
// leaves base unchanged; unknown keys are rejected.
func LoadConfig(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := base
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment overrides onto c and resolves the file
// backend passphrase.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvBackend)); v != "" {
		c.Backend = Backend(v)
	}
	if v := strings.TrimSpace(getenv(EnvService)); v != "" {
		c.Service = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFormat)); v != "" {
		c.Log.Format = logging.Format(v)
	}
	if c.File.PassphraseEnv != "" {
		c.File.Passphrase = getenv(c.File.PassphraseEnv)
	}
}

// FilePath returns the secrets file location with relative paths resolved
// under Home.
func (c Config) FilePath() string {
	if filepath.IsAbs(c.File.Path) || c.Home == "" {
		return c.File.Path
	}
	return filepath.Join(c.Home, c.File.Path)
}

// Validate reports configuration errors before any store is touched.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Service) == "" {
		return errors.New("config: service must not be empty")
	}
	switch c.Backend {
	case BackendAuto, BackendKeyring, BackendMemory, BackendUnsupported:
	case BackendFile:
		if strings.TrimSpace(c.File.Path) == "" {
			return errors.New("config: file backend needs file.path")
		}
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
