package types

import (
	"fmt"
	"strings"
)

// Scheme represents the signature scheme a key pair is bound to
type Scheme string

const (
	SchemeEcdsa   Scheme = "ecdsa"
	SchemeSr25519 Scheme = "sr25519"
	SchemeEd25519 Scheme = "ed25519"
)

// AllSchemes lists every supported scheme in flag-help order
var AllSchemes = []Scheme{SchemeSr25519, SchemeEd25519, SchemeEcdsa}

// ParseScheme parses a scheme name (case-insensitive)
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case SchemeEcdsa:
		return SchemeEcdsa, nil
	case SchemeSr25519:
		return SchemeSr25519, nil
	case SchemeEd25519:
		return SchemeEd25519, nil
	default:
		return "", fmt.Errorf("unsupported scheme: %q (expected one of sr25519, ed25519, ecdsa)", s)
	}
}

func (s Scheme) String() string {
	return string(s)
}

// MultiSignatureIndex returns the variant index used by the runtime's MultiSignature enum
func (s Scheme) MultiSignatureIndex() byte {
	switch s {
	case SchemeEd25519:
		return 0
	case SchemeSr25519:
		return 1
	case SchemeEcdsa:
		return 2
	default:
		panic(fmt.Sprintf("unknown scheme %q", string(s)))
	}
}

// OutputType selects how account reports are rendered
type OutputType string

const (
	OutputJSON OutputType = "json"
	OutputText OutputType = "text"
)

// ParseOutputType parses an output type name (case-insensitive)
func ParseOutputType(s string) (OutputType, error) {
	switch OutputType(strings.ToLower(strings.TrimSpace(s))) {
	case OutputJSON:
		return OutputJSON, nil
	case OutputText:
		return OutputText, nil
	default:
		return "", fmt.Errorf("unsupported output type: %q (expected json or text)", s)
	}
}

// Network identifiers for SS58 addresses
const (
	// DefaultNetwork is the generic Substrate network identifier
	DefaultNetwork uint16 = 42
	// MaxNetwork is the largest identifier the two-byte prefix can carry
	MaxNetwork uint16 = 16383
)
