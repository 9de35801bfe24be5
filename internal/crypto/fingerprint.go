package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"fireplace/internal/domain"
)

// DeviceID returns the lowercase hex SHA-256 digest of a public key.
//
// Unlike a display fingerprint it is never truncated: the gateway uses it as
// a stable cross-session handle for the device.
func DeviceID(pub domain.Ed25519Public) domain.DeviceID {
	sum := sha256.Sum256(pub[:])
	return domain.DeviceID(hex.EncodeToString(sum[:]))
}
