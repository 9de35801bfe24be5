package crypto

import (
	"runtime"

	"fireplace/internal/domain"
)

// Wipe zeroes b in place. Copies made earlier by the runtime or by callers
// are not reached, so this only shortens the lifetime of the secret.
//
//go:noinline
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	clear(b)
	runtime.KeepAlive(&b)
}

// WipeSeed zeroes an Ed25519 seed held by value.
func WipeSeed(s *domain.Ed25519Seed) {
	if s == nil {
		return
	}
	Wipe(s[:])
}
