package app

import (
	"log/slog"
	"runtime"

	"github.com/google/uuid"

	"fireplace/internal/domain"
)

// Bridge is the caller-facing boundary: plain strings in, plain strings or
// string-keyed records out. Errors are returned unchanged so callers can
// classify them with errors.Is or domain.ErrorKind.
//
// Every call is a blocking round trip to the secure store and may wait on an
// OS authorization prompt. UI callers must invoke Bridge off their event
// thread and apply their own timeout; a timed-out call has an unknown
// outcome.
type Bridge struct {
	ids   domain.IdentityService
	vault domain.CredentialVault
	log   *slog.Logger
}

// NewBridge returns a Bridge over the given services.
func NewBridge(ids domain.IdentityService, vault domain.CredentialVault, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bridge{ids: ids, vault: vault, log: logger}
}

// StoreToken persists a gateway-issued token for (deviceID, gatewayURL).
func (b *Bridge) StoreToken(deviceID, gatewayURL, token, role string, scopes []string, issuedAtMs int64) error {
	log := b.op("store_token")
	err := b.vault.Store(domain.DeviceID(deviceID), domain.GatewayURL(gatewayURL), token, role, scopes, issuedAtMs)
	return b.done(log, err)
}

// RetrieveToken returns the stored token for (deviceID, gatewayURL) as a
// TokenRecord.
func (b *Bridge) RetrieveToken(deviceID, gatewayURL string) (domain.TokenRecord, error) {
	log := b.op("retrieve_token")
	rec, err := b.vault.Retrieve(domain.DeviceID(deviceID), domain.GatewayURL(gatewayURL))
	if err := b.done(log, err); err != nil {
		return nil, err
	}
	return rec.Record(), nil
}

// DeleteToken removes the stored token for (deviceID, gatewayURL).
func (b *Bridge) DeleteToken(deviceID, gatewayURL string) error {
	log := b.op("delete_token")
	return b.done(log, b.vault.Delete(domain.DeviceID(deviceID), domain.GatewayURL(gatewayURL)))
}

// HasToken reports whether a token is stored for (deviceID, gatewayURL).
func (b *Bridge) HasToken(deviceID, gatewayURL string) (bool, error) {
	log := b.op("has_token")
	ok, err := b.vault.HasToken(domain.DeviceID(deviceID), domain.GatewayURL(gatewayURL))
	if err := b.done(log, err); err != nil {
		return false, err
	}
	return ok, nil
}

// ListTokens returns every token the secure store can enumerate. An empty
// result does not prove that no tokens exist.
func (b *Bridge) ListTokens() ([]domain.TokenRecord, error) {
	log := b.op("list_tokens")
	all, err := b.vault.ListAll()
	if err := b.done(log, err); err != nil {
		return nil, err
	}
	out := make([]domain.TokenRecord, 0, len(all))
	for _, t := range all {
		out = append(out, t.Record())
	}
	return out, nil
}

// GetDevicePublicKey returns the device public key as unpadded base64url.
func (b *Bridge) GetDevicePublicKey() (string, error) {
	log := b.op("get_device_public_key")
	pk, err := b.ids.PublicKey()
	if err := b.done(log, err); err != nil {
		return "", err
	}
	return pk, nil
}

// GetDeviceID returns the device identifier.
func (b *Bridge) GetDeviceID() (string, error) {
	log := b.op("get_device_id")
	id, err := b.ids.DeviceID()
	if err := b.done(log, err); err != nil {
		return "", err
	}
	return id.String(), nil
}

// SignPayload signs the UTF-8 bytes of payload and returns the signature as
// unpadded base64url.
func (b *Bridge) SignPayload(payload string) (string, error) {
	log := b.op("sign_payload")
	sig, err := b.ids.Sign([]byte(payload))
	if err := b.done(log, err); err != nil {
		return "", err
	}
	return sig, nil
}

// Platform names the host platform: macos, ios, linux, windows or unknown.
func (b *Bridge) Platform() string { return platformName(runtime.GOOS) }

func platformName(goos string) string {
	switch goos {
	case "darwin":
		return "macos"
	case "ios", "linux", "windows":
		return goos
	default:
		return "unknown"
	}
}

func (b *Bridge) op(name string) *slog.Logger {
	log := b.log.With("op", name, "op_id", uuid.NewString())
	log.Debug("bridge call")
	return log
}

func (b *Bridge) done(log *slog.Logger, err error) error {
	if err != nil {
		log.Warn("bridge call failed", "kind", domain.ErrorKind(err), "err", err)
	}
	return err
}
