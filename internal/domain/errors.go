package domain

import "errors"

// Error kinds surfaced by the secure store, the identity keystore and the
// credential vault. Detail is attached by wrapping with %w; callers match
// with errors.Is.
var (
	// ErrAccessDenied means the secure store refused the operation.
	ErrAccessDenied = errors.New("keychain access denied")
	// ErrNotFound means no entry exists under the requested key.
	ErrNotFound = errors.New("token not found")
	// ErrInvalidData means stored bytes exist but do not have the expected shape.
	ErrInvalidData = errors.New("invalid data format")
	// ErrUnsupportedPlatform means there is no secure store on this platform.
	ErrUnsupportedPlatform = errors.New("platform not supported")
)

// Kind names returned by ErrorKind.
const (
	KindAccessDenied        = "AccessDenied"
	KindNotFound            = "NotFound"
	KindInvalidData         = "InvalidData"
	KindUnsupportedPlatform = "UnsupportedPlatform"
	KindInternal            = "Internal"
)

// ErrorKind classifies err into one of the kind names above. A nil error
// yields the empty string.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAccessDenied):
		return KindAccessDenied
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidData):
		return KindInvalidData
	case errors.Is(err, ErrUnsupportedPlatform):
		return KindUnsupportedPlatform
	default:
		return KindInternal
	}
}
