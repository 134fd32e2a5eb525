package crypto

import (
	"github.com/EmekaIwuagwu/keyforge/internal/types"
)

// KeyPair is a scheme-bound signing key derived for a single command invocation
type KeyPair interface {
	// Scheme returns the signature scheme the pair belongs to
	Scheme() types.Scheme

	// Public returns the raw public key bytes
	Public() []byte

	// Seed returns the raw secret seed, or nil when the scheme cannot expose one
	Seed() []byte

	// Sign signs arbitrary data and returns the raw signature
	Sign(data []byte) ([]byte, error)

	// Verify checks a signature against the pair's own public key
	Verify(data, signature []byte) bool

	// Close clears sensitive data
	Close() error
}

// Capability is the per-scheme entry point every command is written against
type Capability interface {
	// Scheme returns the signature scheme
	Scheme() types.Scheme

	// PublicKeyLen is the width of the scheme's public key
	PublicKeyLen() int

	// SignatureLen is the width of the scheme's raw signature
	SignatureLen() int

	// FromPhrase derives a pair from a bare BIP39 mnemonic
	FromPhrase(phrase, password string) (KeyPair, error)

	// FromURI derives a pair from a secret URI with optional junctions
	FromURI(uri, password string) (KeyPair, error)
}

// closeQuietly closes a pair on a path where the close error cannot be surfaced
func closeQuietly(pair KeyPair) {
	if pair == nil {
		return
	}
	_ = pair.Close()
}
