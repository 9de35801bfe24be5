//go:build !darwin && !linux && !windows

package store

import "fireplace/internal/domain"

// NewPlatform returns a store that fails every call: this platform has no
// supported secure storage.
func NewPlatform() domain.SecretStore { return Unsupported{} }

// PlatformSupported reports whether NewPlatform returns a working backend.
const PlatformSupported = false
