package types

// StoredToken is a gateway-issued authorization token together with the
// metadata needed to validate it on reconnect. It is persisted as JSON in the
// secure store; one entry exists per (device id, normalized gateway URL).
type StoredToken struct {
	// Token is the opaque bearer string issued by the gateway.
	Token string `json:"token"`
	// DeviceID is the device this token is bound to.
	DeviceID DeviceID `json:"device_id"`
	// GatewayURL is the gateway URL exactly as supplied to the store call.
	GatewayURL GatewayURL `json:"gateway_url"`
	// IssuedAtMs is the gateway timestamp (Unix milliseconds).
	IssuedAtMs int64 `json:"issued_at_ms"`
	// StoredAtMs is the local write time (Unix milliseconds).
	StoredAtMs int64 `json:"stored_at_ms"`
	// Role is the single role granted by the gateway, e.g. "operator".
	Role string `json:"role"`
	// Scopes are the granted scopes in the order the gateway returned them.
	Scopes []string `json:"scopes"`
}

// TokenRecord is the caller-agnostic rendering of a StoredToken handed to
// the UI layer: a string-keyed map with camelCase keys.
type TokenRecord map[string]any

// Record renders t as a TokenRecord. Scopes is always a non-nil slice so it
// serializes as a JSON array.
func (t StoredToken) Record() TokenRecord {
	scopes := make([]string, len(t.Scopes))
	copy(scopes, t.Scopes)
	return TokenRecord{
		"token":      t.Token,
		"deviceId":   string(t.DeviceID),
		"gatewayUrl": string(t.GatewayURL),
		"issuedAtMs": t.IssuedAtMs,
		"storedAtMs": t.StoredAtMs,
		"role":       t.Role,
		"scopes":     scopes,
	}
}
