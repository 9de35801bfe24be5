// Package commands defines the fireplace CLI and wires dependencies for subcommands.
//
// Commands
//
//   - public-key     Print the device public key (base64url, unpadded)
//   - device-id      Print the device identifier (hex SHA-256 of the public key)
//   - sign           Sign a payload with the device key
//   - token store    Store a gateway-issued token
//   - token get      Print a stored token as JSON
//   - token delete   Remove a stored token
//   - token has      Report whether a token is stored
//   - token list     Print every token the secure store can enumerate
//   - platform       Print the host platform name
//
// # Implementation
//
// The root command resolves configuration (defaults, then <home>/config.yaml,
// then FIREPLACE_* environment variables, then flags) and builds the
// dependency graph before any subcommand runs. Subcommands only talk to
// app.Bridge.
package commands
