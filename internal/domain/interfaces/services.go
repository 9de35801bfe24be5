package interfaces

import domaintypes "fireplace/internal/domain/types"

// IdentityService owns the device signing keypair. It hands out the public
// identity and signatures, never the private key.
type IdentityService interface {
	EnsureKeypair() (domaintypes.Ed25519Public, error)
	PublicKey() (string, error)
	DeviceID() (domaintypes.DeviceID, error)
	Sign(payload []byte) (string, error)
}

// CredentialVault persists gateway-issued tokens scoped by device and gateway.
type CredentialVault interface {
	Store(
		deviceID domaintypes.DeviceID,
		gatewayURL domaintypes.GatewayURL,
		token string,
		role string,
		scopes []string,
		issuedAtMs int64,
	) error
	Retrieve(
		deviceID domaintypes.DeviceID,
		gatewayURL domaintypes.GatewayURL,
	) (domaintypes.StoredToken, error)
	Delete(deviceID domaintypes.DeviceID, gatewayURL domaintypes.GatewayURL) error
	HasToken(deviceID domaintypes.DeviceID, gatewayURL domaintypes.GatewayURL) (bool, error)
	ListAll() ([]domaintypes.StoredToken, error)
}
