package ed25519

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/EmekaIwuagwu/keyforge/internal/crypto/suri"
	"github.com/EmekaIwuagwu/keyforge/internal/types"
	subkey "github.com/vedhavyas/go-subkey/v2"
	subed25519 "github.com/vedhavyas/go-subkey/v2/ed25519"
)

var scheme = subed25519.Scheme{}

const (
	PublicKeySize = ed25519.PublicKeySize
	SignatureSize = ed25519.SignatureSize
)

// Ed25519Signer holds an Ed25519 key pair derived from a secret URI
type Ed25519Signer struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
}

// NewEd25519SignerFromSeed creates a signer from a 32-byte seed
func NewEd25519SignerFromSeed(seed []byte) (*Ed25519Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid seed size: expected %d, got %d",
			ed25519.SeedSize, len(seed))
	}

	privateKey := ed25519.NewKeyFromSeed(seed)
	publicKey := privateKey.Public().(ed25519.PublicKey)

	return &Ed25519Signer{
		privateKey: privateKey,
		publicKey:  publicKey,
	}, nil
}

// FromPhrase creates a signer from a BIP39 mnemonic and optional password
func FromPhrase(phrase, password string) (*Ed25519Signer, error) {
	kp, err := scheme.FromPhrase(phrase, password)
	if err != nil {
		return nil, fmt.Errorf("failed to derive from phrase: %w", err)
	}
	return fromBackend(kp)
}

// FromURI creates a signer from a secret URI. Only hard junctions are
// supported by the scheme.
func FromURI(uri, password string) (*Ed25519Signer, error) {
	kp, err := subkey.DeriveKeyPair(scheme, suri.Compose(uri, password))
	if err != nil {
		return nil, fmt.Errorf("failed to derive from uri: %w", err)
	}
	return fromBackend(kp)
}

func fromBackend(kp subkey.KeyPair) (*Ed25519Signer, error) {
	seed := kp.Seed()
	defer zero(seed)

	s, err := NewEd25519SignerFromSeed(seed)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(s.publicKey, kp.Public()) {
		s.Close()
		return nil, fmt.Errorf("derived public key does not match seed")
	}
	return s, nil
}

// Scheme returns the signature scheme
func (s *Ed25519Signer) Scheme() types.Scheme {
	return types.SchemeEd25519
}

// Public returns the public key bytes
func (s *Ed25519Signer) Public() []byte {
	out := make([]byte, len(s.publicKey))
	copy(out, s.publicKey)
	return out
}

// Seed returns a copy of the 32-byte secret seed
func (s *Ed25519Signer) Seed() []byte {
	if len(s.privateKey) == 0 {
		return nil
	}
	return append([]byte(nil), s.privateKey.Seed()...)
}

// Sign signs arbitrary data using Ed25519
func (s *Ed25519Signer) Sign(data []byte) ([]byte, error) {
	if len(s.privateKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("signer is closed")
	}
	signature := ed25519.Sign(s.privateKey, data)
	if len(signature) != ed25519.SignatureSize {
		return nil, fmt.Errorf("invalid signature size: %d", len(signature))
	}
	return signature, nil
}

// Verify verifies an Ed25519 signature against the signer's public key
func (s *Ed25519Signer) Verify(data []byte, signature []byte) bool {
	if len(signature) != ed25519.SignatureSize || len(s.publicKey) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(s.publicKey, data, signature)
}

// Close clears sensitive data
func (s *Ed25519Signer) Close() error {
	zero(s.privateKey)
	s.privateKey = nil
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
