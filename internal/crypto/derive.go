package crypto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/EmekaIwuagwu/keyforge/internal/address"
	"github.com/EmekaIwuagwu/keyforge/internal/crypto/suri"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tyler-smith/go-bip39"
)

// ErrInvalidKeyMaterial is returned when a string is neither a phrase, a
// secret URI nor a public key for the selected scheme
var ErrInvalidKeyMaterial = errors.New("invalid phrase/URI given")

// DerivationKind records which strategy produced a Derived value
type DerivationKind int

const (
	// KindPhrase is a bare mnemonic phrase
	KindPhrase DerivationKind = iota
	// KindSecretURI is a phrase or seed with junctions or an embedded password
	KindSecretURI
	// KindPublic is a public key or address with no secret material
	KindPublic
)

func (k DerivationKind) String() string {
	switch k {
	case KindPhrase:
		return "phrase"
	case KindSecretURI:
		return "secret_uri"
	case KindPublic:
		return "public"
	default:
		return "unknown"
	}
}

// Derived is the result of resolving user key material
type Derived struct {
	Kind  DerivationKind
	Input string

	// Pair is nil for KindPublic
	Pair KeyPair

	// Network is the identifier embedded in a public address, if any
	Network         uint16
	NetworkEmbedded bool

	public []byte
	seed   []byte
}

// Public returns the public key bytes
func (d *Derived) Public() []byte {
	return append([]byte(nil), d.public...)
}

// Seed returns the raw seed, or nil when not applicable
func (d *Derived) Seed() []byte {
	if d.seed == nil {
		return nil
	}
	return append([]byte(nil), d.seed...)
}

// Close releases the key pair and zeroes the seed
func (d *Derived) Close() error {
	for i := range d.seed {
		d.seed[i] = 0
	}
	d.seed = nil
	if d.Pair != nil {
		err := d.Pair.Close()
		d.Pair = nil
		return err
	}
	return nil
}

// Derive resolves uri into key material for the given scheme, trying a bare
// phrase, then a secret URI, then a public key string. The caller owns the
// result and must Close it.
func Derive(c Capability, uri, password string) (*Derived, error) {
	if IsPhrase(uri) {
		if pair, err := c.FromPhrase(uri, password); err == nil {
			return &Derived{
				Kind:   KindPhrase,
				Input:  uri,
				Pair:   pair,
				public: pair.Public(),
				seed:   pair.Seed(),
			}, nil
		}
	}

	if pair, err := c.FromURI(uri, password); err == nil {
		return &Derived{
			Kind:   KindSecretURI,
			Input:  uri,
			Pair:   pair,
			public: pair.Public(),
			seed:   pair.Seed(),
		}, nil
	}

	if public, network, embedded, err := ParsePublic(c, uri); err == nil {
		return &Derived{
			Kind:            KindPublic,
			Input:           uri,
			Network:         network,
			NetworkEmbedded: embedded,
			public:          public,
		}, nil
	}

	return nil, ErrInvalidKeyMaterial
}

// WithKeyPair derives a signing pair from a secret URI, hands it to fn and
// closes it on every exit path
func WithKeyPair(c Capability, uri, password string, fn func(KeyPair) error) error {
	pair, err := c.FromURI(uri, password)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKeyMaterial, schemeOnly(err))
	}
	defer closeQuietly(pair)

	return fn(pair)
}

// IsPhrase reports whether s is a valid BIP39 mnemonic with no junctions
func IsPhrase(s string) bool {
	if suri.HasJunctions(s) {
		return false
	}
	return bip39.IsMnemonicValid(strings.TrimSpace(s))
}

// ParsePublic parses an SS58 address or 0x-prefixed hex public key of the
// scheme's width
func ParsePublic(c Capability, s string) ([]byte, uint16, bool, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		public, err := hexutil.Decode(s)
		if err != nil {
			return nil, 0, false, fmt.Errorf("invalid hex public key: %w", err)
		}
		if len(public) != c.PublicKeyLen() {
			return nil, 0, false, fmt.Errorf("invalid public key size for %s: expected %d, got %d",
				c.Scheme(), c.PublicKeyLen(), len(public))
		}
		return public, 0, false, nil
	}

	network, public, err := address.Decode(s)
	if err != nil {
		return nil, 0, false, err
	}
	if len(public) != c.PublicKeyLen() {
		return nil, 0, false, fmt.Errorf("invalid public key size for %s: expected %d, got %d",
			c.Scheme(), c.PublicKeyLen(), len(public))
	}
	return public, network, true, nil
}

// schemeOnly strips backend error text that could echo the URI
func schemeOnly(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ":"); i >= 0 {
		return msg[:i]
	}
	return msg
}
