//go:build darwin || linux || windows

package store

import "fireplace/internal/domain"

// NewPlatform returns the native secure store for this platform: the OS
// keychain.
func NewPlatform() domain.SecretStore { return NewKeyringStore() }

// PlatformSupported reports whether NewPlatform returns a working backend.
const PlatformSupported = true
