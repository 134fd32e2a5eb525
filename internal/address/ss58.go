package address

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/EmekaIwuagwu/keyforge/internal/types"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// AccountIDLength is the width of a canonical account identifier
const AccountIDLength = 32

const checksumLength = 2

var ss58Prefix = []byte("SS58PRE")

var (
	// ErrInvalidAddress is returned when a string is not a well-formed SS58 address
	ErrInvalidAddress = errors.New("invalid ss58 address")
	// ErrInvalidNetwork is returned for identifiers outside the encodable range
	ErrInvalidNetwork = errors.New("invalid network identifier")
)

// AccountID derives the account identifier for a public key.
// Keys wider than 32 bytes are hashed with blake2b-256, narrower keys are used as-is.
func AccountID(publicKey []byte) []byte {
	if len(publicKey) > AccountIDLength {
		sum := blake2b.Sum256(publicKey)
		return sum[:]
	}
	id := make([]byte, len(publicKey))
	copy(id, publicKey)
	return id
}

// Encode renders payload as an SS58 address for the given network
func Encode(payload []byte, network uint16) (string, error) {
	prefix, err := encodePrefix(network)
	if err != nil {
		return "", err
	}

	body := make([]byte, 0, len(prefix)+len(payload)+checksumLength)
	body = append(body, prefix...)
	body = append(body, payload...)

	sum := checksum(body)
	body = append(body, sum[:checksumLength]...)

	return base58.Encode(body), nil
}

// EncodeAccount renders the account identifier of publicKey as an SS58 address
func EncodeAccount(publicKey []byte, network uint16) (string, error) {
	return Encode(AccountID(publicKey), network)
}

// Decode parses an SS58 address and returns its network and payload
func Decode(addr string) (uint16, []byte, error) {
	data, err := base58.Decode(addr)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(data) < 2 {
		return 0, nil, fmt.Errorf("%w: too short", ErrInvalidAddress)
	}

	var (
		network   uint16
		prefixLen int
	)
	switch {
	case data[0] < 64:
		network = uint16(data[0])
		prefixLen = 1
	case data[0] < 128:
		lower := (data[0] << 2) | (data[1] >> 6)
		upper := data[1] & 0x3f
		network = uint16(lower) | uint16(upper)<<8
		prefixLen = 2
	default:
		return 0, nil, fmt.Errorf("%w: reserved prefix byte %d", ErrInvalidAddress, data[0])
	}

	if len(data) < prefixLen+checksumLength+1 {
		return 0, nil, fmt.Errorf("%w: too short", ErrInvalidAddress)
	}

	bodyLen := len(data) - checksumLength
	sum := checksum(data[:bodyLen])
	if !bytes.Equal(sum[:checksumLength], data[bodyLen:]) {
		return 0, nil, fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)
	}

	payload := make([]byte, bodyLen-prefixLen)
	copy(payload, data[prefixLen:bodyLen])
	return network, payload, nil
}

func encodePrefix(network uint16) ([]byte, error) {
	switch {
	case network < 64:
		return []byte{byte(network)}, nil
	case network <= types.MaxNetwork:
		first := byte((network&0x00fc)>>2) | 0x40
		second := byte(network>>8) | byte((network&0x0003)<<6)
		return []byte{first, second}, nil
	default:
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrInvalidNetwork, network, types.MaxNetwork)
	}
}

func checksum(body []byte) [blake2b.Size]byte {
	buf := make([]byte, 0, len(ss58Prefix)+len(body))
	buf = append(buf, ss58Prefix...)
	buf = append(buf, body...)
	return blake2b.Sum512(buf)
}
