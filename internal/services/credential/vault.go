package credential

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"fireplace/internal/domain"
)

// Vault persists StoredToken records in a domain.SecretStore. It holds no
// state of its own: every call is a direct request to the store.
type Vault struct {
	store   domain.SecretStore
	service string
	now     func() time.Time
	log     *slog.Logger
}

// Option configures a Vault.
type Option func(*Vault)

// WithService overrides the secure-store service identifier.
func WithService(name string) Option { return func(v *Vault) { v.service = name } }

// WithClock overrides the clock used to stamp StoredAtMs.
func WithClock(now func() time.Time) Option { return func(v *Vault) { v.now = now } }

// WithLogger sets the logger used for operational messages.
func WithLogger(l *slog.Logger) Option { return func(v *Vault) { v.log = l } }

// New returns a vault backed by the given secure store.
func New(store domain.SecretStore, opts ...Option) *Vault {
	v := &Vault{
		store:   store,
		service: domain.DefaultService,
		now:     time.Now,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Store writes a token for (deviceID, gatewayURL), replacing any previous
// entry for that slot. StoredAtMs is set to the current time.
func (v *Vault) Store(
	deviceID domain.DeviceID,
	gatewayURL domain.GatewayURL,
	token string,
	role string,
	scopes []string,
	issuedAtMs int64,
) error {
	rec := domain.StoredToken{
		Token:      token,
		DeviceID:   deviceID,
		GatewayURL: gatewayURL,
		IssuedAtMs: issuedAtMs,
		StoredAtMs: v.now().UnixMilli(),
		Role:       role,
		Scopes:     append(make([]string, 0, len(scopes)), scopes...),
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode token: %v", domain.ErrInvalidData, err)
	}
	account := Account(deviceID, gatewayURL)
	if err := v.store.Set(v.service, account, raw); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	v.log.Debug("stored token", "device_id", string(deviceID), "gateway", NormalizeGatewayURL(gatewayURL), "role", role)
	return nil
}

// Retrieve returns the token for (deviceID, gatewayURL). It fails with
// ErrNotFound when the slot is empty and ErrInvalidData when the stored
// bytes are not a StoredToken.
func (v *Vault) Retrieve(deviceID domain.DeviceID, gatewayURL domain.GatewayURL) (domain.StoredToken, error) {
	return v.read(Account(deviceID, gatewayURL))
}

// Delete removes the token for (deviceID, gatewayURL). Deleting an empty
// slot fails with ErrNotFound; callers wanting idempotent deletes treat that
// as success.
func (v *Vault) Delete(deviceID domain.DeviceID, gatewayURL domain.GatewayURL) error {
	if err := v.store.Delete(v.service, Account(deviceID, gatewayURL)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete token: %w", err)
	}
	v.log.Debug("deleted token", "device_id", string(deviceID), "gateway", NormalizeGatewayURL(gatewayURL))
	return nil
}

// HasToken reports whether a readable token exists for (deviceID,
// gatewayURL). An empty slot is false with a nil error; any other failure,
// including a corrupted entry, is returned.
func (v *Vault) HasToken(deviceID domain.DeviceID, gatewayURL domain.GatewayURL) (bool, error) {
	_, err := v.Retrieve(deviceID, gatewayURL)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// ListAll returns every token the store can enumerate, ordered by account.
//
// This is best-effort. Stores that cannot enumerate (the OS keychain) yield
// an empty result, which is not evidence that no tokens exist: callers that
// know which slots to probe must use Retrieve or HasToken.
func (v *Vault) ListAll() ([]domain.StoredToken, error) {
	lister, ok := v.store.(domain.SecretLister)
	if !ok {
		v.log.Debug("secure store cannot enumerate tokens")
		return []domain.StoredToken{}, nil
	}
	accounts, err := lister.List(v.service)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	out := make([]domain.StoredToken, 0, len(accounts))
	for _, account := range accounts {
		if !isTokenAccount(account) {
			continue
		}
		rec, err := v.read(account)
		if errors.Is(err, domain.ErrNotFound) {
			// Deleted between List and Get.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (v *Vault) read(account string) (domain.StoredToken, error) {
	raw, err := v.store.Get(v.service, account)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.StoredToken{}, err
		}
		return domain.StoredToken{}, fmt.Errorf("retrieve token: %w", err)
	}
	return decodeToken(raw)
}

// wireToken mirrors domain.StoredToken with pointer fields so that absent
// and null fields can be told apart from zero values.
type wireToken struct {
	Token      *string   `json:"token"`
	DeviceID   *string   `json:"device_id"`
	GatewayURL *string   `json:"gateway_url"`
	IssuedAtMs *int64    `json:"issued_at_ms"`
	StoredAtMs *int64    `json:"stored_at_ms"`
	Role       *string   `json:"role"`
	Scopes     *[]string `json:"scopes"`
}

// decodeToken parses a stored record strictly: unknown fields, trailing
// data and any missing or null field are all ErrInvalidData.
func decodeToken(raw []byte) (domain.StoredToken, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var w wireToken
	if err := dec.Decode(&w); err != nil {
		return domain.StoredToken{}, fmt.Errorf("%w: failed to parse token: %v", domain.ErrInvalidData, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.StoredToken{}, fmt.Errorf("%w: trailing data after token record", domain.ErrInvalidData)
	}

	for _, f := range []struct {
		name    string
		present bool
	}{
		{"token", w.Token != nil},
		{"device_id", w.DeviceID != nil},
		{"gateway_url", w.GatewayURL != nil},
		{"issued_at_ms", w.IssuedAtMs != nil},
		{"stored_at_ms", w.StoredAtMs != nil},
		{"role", w.Role != nil},
		{"scopes", w.Scopes != nil},
	} {
		if !f.present {
			return domain.StoredToken{}, fmt.Errorf("%w: token record missing %s", domain.ErrInvalidData, f.name)
		}
	}

	return domain.StoredToken{
		Token:      *w.Token,
		DeviceID:   domain.DeviceID(*w.DeviceID),
		GatewayURL: domain.GatewayURL(*w.GatewayURL),
		IssuedAtMs: *w.IssuedAtMs,
		StoredAtMs: *w.StoredAtMs,
		Role:       *w.Role,
		Scopes:     *w.Scopes,
	}, nil
}

// Compile-time assertion that Vault implements domain.CredentialVault.
var _ domain.CredentialVault = (*Vault)(nil)
