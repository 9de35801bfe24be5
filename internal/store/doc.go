// Package store provides the secure-storage backends behind
// domain.SecretStore.
//
// Every backend addresses secrets by (service, account) and maps its native
// failures onto the domain error kinds. The package includes:
//   - KeyringStore: the OS keychain (macOS Keychain, Windows Credential
//     Manager, Secret Service on Linux) via go-keyring
//   - FileStore: a passphrase-encrypted file, for hosts without a keyring
//     daemon
//   - MemoryStore: process-local, for tests and throwaway sessions
//   - Unsupported: fails every call with ErrUnsupportedPlatform
//
// NewPlatform selects the native backend for the build target.
package store
