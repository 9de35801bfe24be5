// Package identity manages the device signing keypair.
//
// It lazily generates an Ed25519 seed, persists only that seed via the
// domain.SecretStore, re-derives the public key and device identifier on
// every call, and signs payloads without ever returning key material.
package identity
