package crypto

import "encoding/base64"

// B64URL returns RFC 4648 §5 base64url encoding without padding.
func B64URL(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }
