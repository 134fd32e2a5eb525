package ecdsa

import (
	"bytes"
	"crypto/ecdsa"
	"fmt"

	"github.com/EmekaIwuagwu/keyforge/internal/crypto/suri"
	"github.com/EmekaIwuagwu/keyforge/internal/types"
	"github.com/ethereum/go-ethereum/crypto"
	subkey "github.com/vedhavyas/go-subkey/v2"
	subecdsa "github.com/vedhavyas/go-subkey/v2/ecdsa"
	"golang.org/x/crypto/blake2b"
)

var scheme = subecdsa.Scheme{}

const (
	// PublicKeySize is the width of a compressed secp256k1 public key
	PublicKeySize = 33
	// SignatureSize is r || s || recovery id
	SignatureSize = 65
)

// ECDSASigner implements the secp256k1 key pair used by Substrate runtimes.
// Messages are hashed with blake2b-256 before signing.
type ECDSASigner struct {
	privateKey *ecdsa.PrivateKey
	publicKey  []byte
}

// NewECDSASignerFromSeed creates a signer from a 32-byte secret
func NewECDSASignerFromSeed(seed []byte) (*ECDSASigner, error) {
	privateKey, err := crypto.ToECDSA(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &ECDSASigner{
		privateKey: privateKey,
		publicKey:  crypto.CompressPubkey(&privateKey.PublicKey),
	}, nil
}

// FromPhrase creates a signer from a BIP39 mnemonic and optional password
func FromPhrase(phrase, password string) (*ECDSASigner, error) {
	kp, err := scheme.FromPhrase(phrase, password)
	if err != nil {
		return nil, fmt.Errorf("failed to derive from phrase: %w", err)
	}
	return fromBackend(kp)
}

// FromURI creates a signer from a secret URI (hard junctions only)
func FromURI(uri, password string) (*ECDSASigner, error) {
	kp, err := subkey.DeriveKeyPair(scheme, suri.Compose(uri, password))
	if err != nil {
		return nil, fmt.Errorf("failed to derive from uri: %w", err)
	}
	return fromBackend(kp)
}

func fromBackend(kp subkey.KeyPair) (*ECDSASigner, error) {
	seed := kp.Seed()
	defer func() {
		for i := range seed {
			seed[i] = 0
		}
	}()

	s, err := NewECDSASignerFromSeed(seed)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(s.publicKey, kp.Public()) {
		s.Close()
		return nil, fmt.Errorf("derived public key does not match secret")
	}
	return s, nil
}

// Scheme returns the signature scheme
func (s *ECDSASigner) Scheme() types.Scheme {
	return types.SchemeEcdsa
}

// Public returns the compressed public key
func (s *ECDSASigner) Public() []byte {
	out := make([]byte, len(s.publicKey))
	copy(out, s.publicKey)
	return out
}

// Seed returns the 32-byte secret
func (s *ECDSASigner) Seed() []byte {
	if s.privateKey == nil {
		return nil
	}
	return crypto.FromECDSA(s.privateKey)
}

// Sign signs the blake2b-256 hash of data
func (s *ECDSASigner) Sign(data []byte) ([]byte, error) {
	if s.privateKey == nil {
		return nil, fmt.Errorf("signer is closed")
	}

	hash := blake2b.Sum256(data)
	signature, err := crypto.Sign(hash[:], s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign data: %w", err)
	}

	return signature, nil
}

// Verify verifies a signature over the blake2b-256 hash of data against the
// signer's compressed public key. The recovery id is ignored.
func (s *ECDSASigner) Verify(data []byte, signature []byte) bool {
	if len(signature) != SignatureSize {
		return false
	}
	hash := blake2b.Sum256(data)
	return crypto.VerifySignature(s.publicKey, hash[:], signature[:64])
}

// Close clears sensitive data
func (s *ECDSASigner) Close() error {
	if s.privateKey != nil {
		s.privateKey.D.SetInt64(0)
		s.privateKey = nil
	}
	return nil
}
