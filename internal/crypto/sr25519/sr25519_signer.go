package sr25519

import (
	"fmt"

	"github.com/EmekaIwuagwu/keyforge/internal/crypto/suri"
	"github.com/EmekaIwuagwu/keyforge/internal/types"
	subkey "github.com/vedhavyas/go-subkey/v2"
	subsr25519 "github.com/vedhavyas/go-subkey/v2/sr25519"
)

var scheme = subsr25519.Scheme{}

const (
	PublicKeySize = 32
	SignatureSize = 64
)

// Sr25519Signer wraps a schnorrkel key pair. Signing is randomized, so two
// signatures over the same message differ.
type Sr25519Signer struct {
	pair   subkey.KeyPair
	public []byte
	seed   []byte
}

// FromPhrase creates a signer from a BIP39 mnemonic and optional password
func FromPhrase(phrase, password string) (*Sr25519Signer, error) {
	kp, err := scheme.FromPhrase(phrase, password)
	if err != nil {
		return nil, fmt.Errorf("failed to derive from phrase: %w", err)
	}
	return newSigner(kp), nil
}

// FromURI creates a signer from a secret URI; both hard and soft junctions apply
func FromURI(uri, password string) (*Sr25519Signer, error) {
	kp, err := subkey.DeriveKeyPair(scheme, suri.Compose(uri, password))
	if err != nil {
		return nil, fmt.Errorf("failed to derive from uri: %w", err)
	}
	return newSigner(kp), nil
}

func newSigner(kp subkey.KeyPair) *Sr25519Signer {
	s := &Sr25519Signer{
		pair:   kp,
		public: append([]byte(nil), kp.Public()...),
	}
	if seed := kp.Seed(); len(seed) > 0 {
		s.seed = append([]byte(nil), seed...)
	}
	return s
}

// Scheme returns the signature scheme
func (s *Sr25519Signer) Scheme() types.Scheme {
	return types.SchemeSr25519
}

// Public returns the public key bytes
func (s *Sr25519Signer) Public() []byte {
	return append([]byte(nil), s.public...)
}

// Seed returns the mini secret the pair was built from, or nil after soft derivation
func (s *Sr25519Signer) Seed() []byte {
	if s.seed == nil {
		return nil
	}
	return append([]byte(nil), s.seed...)
}

// Sign signs data under the "substrate" signing context
func (s *Sr25519Signer) Sign(data []byte) ([]byte, error) {
	if s.pair == nil {
		return nil, fmt.Errorf("signer is closed")
	}
	signature, err := s.pair.Sign(data)
	if err != nil {
		return nil, fmt.Errorf("failed to sign data: %w", err)
	}
	return signature, nil
}

// Verify verifies a signature against the signer's own public key
func (s *Sr25519Signer) Verify(data []byte, signature []byte) bool {
	if s.pair == nil || len(signature) != SignatureSize {
		return false
	}
	return s.pair.Verify(data, signature)
}

// Close clears sensitive data. The backend key is dropped; its memory is
// reclaimed by the garbage collector.
func (s *Sr25519Signer) Close() error {
	for i := range s.seed {
		s.seed[i] = 0
	}
	s.seed = nil
	s.pair = nil
	return nil
}
