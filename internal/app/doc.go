// Package app wires application dependencies for fireplace.
//
// It loads Config, builds the secure-store backend it names, the identity
// keystore and the credential vault, and exposes them through Bridge: the
// only surface the UI layer and the CLI call.
package app
