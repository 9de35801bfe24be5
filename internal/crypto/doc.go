// Package crypto exposes the minimal primitives used by fireplace.
//
// Contents
//
//   - Ed25519 seed generation, key derivation, signing and verification
//     (GenerateEd25519Seed, DeriveEd25519, SignEd25519, VerifyEd25519)
//   - Device identifiers derived from public keys (DeviceID)
//   - Unpadded base64url encoding as expected by the gateway (B64URL)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// Public keys are returned as fixed-size array types defined in
// internal/domain. Callers should treat seeds and private keys as sensitive
// and rely on Wipe when practical to reduce their lifetime in memory.
package crypto
