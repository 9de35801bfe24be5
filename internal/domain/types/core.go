package types

// DeviceID is the lowercase hex SHA-256 of a device public key.
type DeviceID string

// String returns the string form of the device identifier.
func (id DeviceID) String() string { return string(id) }

// GatewayURL is a gateway endpoint as supplied by the caller, e.g.
// wss://gateway.example.com/.
type GatewayURL string

// String returns the string form of the gateway URL.
func (u GatewayURL) String() string { return string(u) }
