package crypto

import (
	"crypto/ed25519"
	"fmt"
	"io"

	"fireplace/internal/domain"
)

// GenerateEd25519Seed reads a fresh 32-byte Ed25519 seed from r, which must
// be a cryptographically secure source such as crypto/rand.Reader.
func GenerateEd25519Seed(r io.Reader) (seed domain.Ed25519Seed, err error) {
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return seed, fmt.Errorf("read seed: %w", err)
	}
	return seed, nil
}

// DeriveEd25519 expands seed into the signing key and its public key. The
// derivation is deterministic: the same seed always yields the same pair.
func DeriveEd25519(seed domain.Ed25519Seed) (ed25519.PrivateKey, domain.Ed25519Public) {
	priv := ed25519.NewKeyFromSeed(seed[:])
	return priv, domain.MustEd25519Public(priv[ed25519.SeedSize:])
}

// SignEd25519 signs msg with priv and returns the signature.
func SignEd25519(priv ed25519.PrivateKey, msg []byte) []byte {
	return ed25519.Sign(priv, msg)
}

// VerifyEd25519 verifies sig over msg with pub.
func VerifyEd25519(pub domain.Ed25519Public, msg, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig)
}
