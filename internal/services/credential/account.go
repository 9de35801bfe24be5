package credential

import (
	"strings"

	"fireplace/internal/domain"
)

// AccountPrefix begins every token account name.
const AccountPrefix = "device-token"

// NormalizeGatewayURL strips leading "ws://" and "wss://" schemes and all
// trailing slashes. Matching is case-sensitive; "WSS://host" is left as is.
func NormalizeGatewayURL(u domain.GatewayURL) string {
	s := string(u)
	for strings.HasPrefix(s, "ws://") {
		s = s[len("ws://"):]
	}
	for strings.HasPrefix(s, "wss://") {
		s = s[len("wss://"):]
	}
	return strings.TrimRight(s, "/")
}

// Account builds the secure-store account name for a token slot.
func Account(deviceID domain.DeviceID, gatewayURL domain.GatewayURL) string {
	return AccountPrefix + ":" + string(deviceID) + ":" + NormalizeGatewayURL(gatewayURL)
}

// isTokenAccount reports whether account was produced by Account.
func isTokenAccount(account string) bool {
	return strings.HasPrefix(account, AccountPrefix+":")
}
