package crypto

import (
	"fmt"

	"github.com/EmekaIwuagwu/keyforge/internal/crypto/ecdsa"
	"github.com/EmekaIwuagwu/keyforge/internal/crypto/ed25519"
	"github.com/EmekaIwuagwu/keyforge/internal/crypto/sr25519"
	"github.com/EmekaIwuagwu/keyforge/internal/types"
)

// ForScheme returns the capability implementation for a scheme.
// Schemes are validated when flags are parsed, so an unknown value is a bug.
func ForScheme(scheme types.Scheme) Capability {
	switch scheme {
	case types.SchemeSr25519:
		return sr25519Capability{}
	case types.SchemeEd25519:
		return ed25519Capability{}
	case types.SchemeEcdsa:
		return ecdsaCapability{}
	default:
		panic(fmt.Sprintf("unsupported scheme: %q", string(scheme)))
	}
}

type sr25519Capability struct{}

func (sr25519Capability) Scheme() types.Scheme { return types.SchemeSr25519 }
func (sr25519Capability) PublicKeyLen() int    { return sr25519.PublicKeySize }
func (sr25519Capability) SignatureLen() int    { return sr25519.SignatureSize }

func (sr25519Capability) FromPhrase(phrase, password string) (KeyPair, error) {
	s, err := sr25519.FromPhrase(phrase, password)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (sr25519Capability) FromURI(uri, password string) (KeyPair, error) {
	s, err := sr25519.FromURI(uri, password)
	if err != nil {
		return nil, err
	}
	return s, nil
}

type ed25519Capability struct{}

func (ed25519Capability) Scheme() types.Scheme { return types.SchemeEd25519 }
func (ed25519Capability) PublicKeyLen() int    { return ed25519.PublicKeySize }
func (ed25519Capability) SignatureLen() int    { return ed25519.SignatureSize }

func (ed25519Capability) FromPhrase(phrase, password string) (KeyPair, error) {
	s, err := ed25519.FromPhrase(phrase, password)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (ed25519Capability) FromURI(uri, password string) (KeyPair, error) {
	s, err := ed25519.FromURI(uri, password)
	if err != nil {
		return nil, err
	}
	return s, nil
}

type ecdsaCapability struct{}

func (ecdsaCapability) Scheme() types.Scheme { return types.SchemeEcdsa }
func (ecdsaCapability) PublicKeyLen() int    { return ecdsa.PublicKeySize }
func (ecdsaCapability) SignatureLen() int    { return ecdsa.SignatureSize }

func (ecdsaCapability) FromPhrase(phrase, password string) (KeyPair, error) {
	s, err := ecdsa.FromPhrase(phrase, password)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (ecdsaCapability) FromURI(uri, password string) (KeyPair, error) {
	s, err := ecdsa.FromURI(uri, password)
	if err != nil {
		return nil, err
	}
	return s, nil
}
