package domain

import (
	interfaces "fireplace/internal/domain/interfaces"
	types "fireplace/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	DeviceID      = types.DeviceID
	GatewayURL    = types.GatewayURL
	Ed25519Public = types.Ed25519Public
	Ed25519Seed   = types.Ed25519Seed
	StoredToken   = types.StoredToken
	TokenRecord   = types.TokenRecord
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SecretStore     = interfaces.SecretStore
	SecretLister    = interfaces.SecretLister
	IdentityService = interfaces.IdentityService
	CredentialVault = interfaces.CredentialVault
)

// MustEd25519Public converts b to an Ed25519Public, panicking on a length mismatch.
var MustEd25519Public = types.MustEd25519Public
