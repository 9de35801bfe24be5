// Package credential stores gateway-issued authorization tokens in the
// secure store.
//
// Each token lives under the account
//
//	device-token:{device_id}:{normalized_gateway_url}
//
// where normalization strips the websocket scheme and trailing slashes, so
// wss://host/ and host address the same entry. A store always overwrites;
// there is no expiry handling here, callers judge freshness from
// IssuedAtMs.
package credential
