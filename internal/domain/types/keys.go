package types

import "fmt"

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// Ed25519Seed is the 32-byte private seed of an Ed25519 key. It is the only
// part of the device keypair that is ever persisted.
type Ed25519Seed [32]byte

// Slice returns the seed as a []byte.
func (s Ed25519Seed) Slice() []byte { return s[:] }

// String never renders key material.
func (s Ed25519Seed) String() string { return "Ed25519Seed(REDACTED)" }

// GoString never renders key material.
func (s Ed25519Seed) GoString() string { return s.String() }

// MustEd25519Public converts b to an Ed25519Public, panicking on a length mismatch.
func MustEd25519Public(b []byte) Ed25519Public {
	if len(b) != 32 {
		panic(fmt.Errorf("Ed25519 public: want 32 bytes, got %d", len(b)))
	}
	var out Ed25519Public
	copy(out[:], b)
	return out
}
